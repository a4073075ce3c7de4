package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
)

// Body is an encoded request payload with its content type. File-bearing
// writes use multipart encoding; everything else is JSON. The caller decides
// which by whether the payload carries a file.
type Body struct {
	ContentType string
	Reader      io.Reader
}

// JSONBody marshals v into an application/json body.
func JSONBody(v any) (*Body, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding JSON body: %w", err)
	}
	return &Body{
		ContentType: "application/json",
		Reader:      bytes.NewReader(data),
	}, nil
}

// MultipartBuilder assembles a multipart/form-data body. List-typed fields
// are serialized as a JSON-encoded array string in a single part, matching
// what the API expects for array fields inside multipart writes.
type MultipartBuilder struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error
}

func NewMultipart() *MultipartBuilder {
	b := &MultipartBuilder{}
	b.writer = multipart.NewWriter(&b.buf)
	return b
}

// WriteField adds a plain text field. Errors stick to the builder and
// surface from Body.
func (b *MultipartBuilder) WriteField(name, value string) *MultipartBuilder {
	if b.err != nil {
		return b
	}
	b.err = b.writer.WriteField(name, value)
	return b
}

// WriteBoolField adds a boolean field as "true"/"false".
func (b *MultipartBuilder) WriteBoolField(name string, value bool) *MultipartBuilder {
	return b.WriteField(name, strconv.FormatBool(value))
}

// WriteIntField adds an integer field.
func (b *MultipartBuilder) WriteIntField(name string, value int) *MultipartBuilder {
	return b.WriteField(name, strconv.Itoa(value))
}

// WriteJSONField adds a field whose value is JSON-encoded, used for list
// fields such as technologies and tags.
func (b *MultipartBuilder) WriteJSONField(name string, value any) *MultipartBuilder {
	if b.err != nil {
		return b
	}
	data, err := json.Marshal(value)
	if err != nil {
		b.err = fmt.Errorf("encoding multipart field %s: %w", name, err)
		return b
	}
	b.err = b.writer.WriteField(name, string(data))
	return b
}

// WriteFile streams the file at path into a form-file part.
func (b *MultipartBuilder) WriteFile(name, path string) *MultipartBuilder {
	if b.err != nil {
		return b
	}

	file, err := os.Open(path)
	if err != nil {
		b.err = fmt.Errorf("opening %s for upload: %w", path, err)
		return b
	}
	defer file.Close()

	part, err := b.writer.CreateFormFile(name, filepath.Base(path))
	if err != nil {
		b.err = fmt.Errorf("creating form file %s: %w", name, err)
		return b
	}
	if _, err := io.Copy(part, file); err != nil {
		b.err = fmt.Errorf("copying %s into request: %w", path, err)
	}
	return b
}

// Body finalizes the multipart payload.
func (b *MultipartBuilder) Body() (*Body, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}
	return &Body{
		ContentType: b.writer.FormDataContentType(),
		Reader:      bytes.NewReader(b.buf.Bytes()),
	}, nil
}

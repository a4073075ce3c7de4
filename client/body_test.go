package client

import (
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBody(t *testing.T) {
	body, err := JSONBody(map[string]any{"title": "Site"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", body.ContentType)

	data, err := io.ReadAll(body.Reader)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Site"}`, string(data))
}

func TestMultipartListFieldIsJSONEncoded(t *testing.T) {
	body, err := NewMultipart().
		WriteField("title", "Site").
		WriteJSONField("technologies", []string{"Go", "React"}).
		WriteBoolField("featured", true).
		WriteIntField("order", 3).
		Body()
	require.NoError(t, err)

	form := parseMultipart(t, body)
	assert.Equal(t, "Site", form.Value["title"][0])
	assert.Equal(t, `["Go","React"]`, form.Value["technologies"][0])
	assert.Equal(t, "true", form.Value["featured"][0])
	assert.Equal(t, "3", form.Value["order"][0])
}

func TestMultipartAttachesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	body, err := NewMultipart().
		WriteField("title", "Resume").
		WriteFile("file", path).
		Body()
	require.NoError(t, err)

	form := parseMultipart(t, body)
	require.Len(t, form.File["file"], 1)
	assert.Equal(t, "resume.pdf", form.File["file"][0].Filename)
}

func TestMultipartMissingFileSurfacesFromBody(t *testing.T) {
	_, err := NewMultipart().
		WriteField("title", "Resume").
		WriteFile("file", filepath.Join(t.TempDir(), "nope.pdf")).
		Body()
	assert.Error(t, err)
}

func parseMultipart(t *testing.T, body *Body) *multipart.Form {
	t.Helper()
	_, params, err := mime.ParseMediaType(body.ContentType)
	require.NoError(t, err)

	reader := multipart.NewReader(body.Reader, params["boundary"])
	form, err := reader.ReadForm(16 << 20)
	require.NoError(t, err)
	return form
}

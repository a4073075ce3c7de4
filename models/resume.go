package models

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-admin/client"
	"github.com/rpupo63/portfolio-admin/errs"
)

// MaxResumeSize is the upload cap enforced before any network call.
const MaxResumeSize = 5 * 1024 * 1024

// resumeExtensions maps the accepted upload extensions to their MIME types.
var resumeExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Resume represents an uploaded resume. File holds the server-side storage
// path; FileSize and FileExtension are computed by the serializer for
// display. At most one resume should be active at a time — the API enforces
// that only by convention, so the client warns when it observes a violation.
type Resume struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Version       string    `json:"version,omitempty"`
	File          string    `json:"file"`
	FileURL       string    `json:"file_url,omitempty"`
	FileSize      string    `json:"file_size,omitempty"`
	FileExtension string    `json:"file_extension,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r Resume) Key() int { return r.ID }

// FileName returns the final segment of the stored file path, the name a
// download is saved under.
func (r Resume) FileName() string {
	return path.Base(r.File)
}

// CountActive returns how many of the given resumes are marked active.
func CountActive(resumes []Resume) int {
	active := 0
	for _, r := range resumes {
		if r.IsActive {
			active++
		}
	}
	return active
}

// ResumeForm carries resume upload fields. FilePath points at the local
// document; it is required on create and optional on update (leave empty to
// keep the current file).
type ResumeForm struct {
	Title       string
	Description string
	Version     string
	FilePath    string
	IsActive    bool

	// FileRequired distinguishes create (true) from update (false).
	FileRequired bool
}

func (f ResumeForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if f.FilePath == "" {
		if f.FileRequired {
			return errs.NewMissingRequiredFieldError("file")
		}
		return nil
	}
	return CheckResumeFile(f.FilePath)
}

// CheckResumeFile rejects files that are not PDF/DOC/DOCX or exceed the
// 5 MB cap. Runs before any network call; a rejected file never produces a
// request.
func CheckResumeFile(filePath string) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	if _, ok := resumeExtensions[ext]; !ok {
		return errs.NewFileTypeError(ext, []string{"PDF", "DOC", "DOCX"})
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return errs.NewInvalidFieldError("file", fmt.Sprintf("cannot read %s: %v", filePath, err))
	}
	if info.Size() > MaxResumeSize {
		return errs.NewFileTooLargeError(info.Size(), MaxResumeSize)
	}
	return nil
}

func (f ResumeForm) Encode() (*client.Body, error) {
	builder := client.NewMultipart().
		WriteField("title", f.Title).
		WriteField("description", f.Description).
		WriteField("version", f.Version).
		WriteBoolField("is_active", f.IsActive)

	if f.FilePath != "" {
		builder = builder.WriteFile("file", f.FilePath)
	}
	return builder.Body()
}

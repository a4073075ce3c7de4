package models

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-admin/errs"
)

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestCheckResumeFileAcceptsDocumentTypes(t *testing.T) {
	for _, name := range []string{"resume.pdf", "resume.doc", "resume.docx", "Resume.PDF"} {
		path := writeTempFile(t, name, []byte("content"))
		assert.NoError(t, CheckResumeFile(path), name)
	}
}

func TestCheckResumeFileRejectsOtherTypes(t *testing.T) {
	for _, name := range []string{"resume.exe", "resume.txt", "resume"} {
		path := writeTempFile(t, name, []byte("content"))
		err := CheckResumeFile(path)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, errs.ErrFileType)
		assert.True(t, errs.IsLocalValidation(err))
	}
}

func TestCheckResumeFileRejectsOversize(t *testing.T) {
	path := writeTempFile(t, "big.pdf", bytes.Repeat([]byte("a"), MaxResumeSize+1))

	err := CheckResumeFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrFileTooLarge)
}

func TestCheckResumeFileAcceptsAtLimit(t *testing.T) {
	path := writeTempFile(t, "exact.pdf", bytes.Repeat([]byte("a"), MaxResumeSize))
	assert.NoError(t, CheckResumeFile(path))
}

func TestResumeFormFileRequiredOnlyOnCreate(t *testing.T) {
	create := ResumeForm{Title: "Resume", FileRequired: true}
	err := create.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMissingRequiredField)

	update := ResumeForm{Title: "Resume", FileRequired: false}
	assert.NoError(t, update.Validate())
}

func TestResumeFormEncodeIsMultipart(t *testing.T) {
	path := writeTempFile(t, "resume.pdf", []byte("%PDF-1.4"))

	body, err := ResumeForm{Title: "Resume", FilePath: path, IsActive: true}.Encode()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(body.ContentType, "multipart/form-data"))
}

func TestResumeFileName(t *testing.T) {
	r := Resume{File: "resumes/resume_2026.pdf"}
	assert.Equal(t, "resume_2026.pdf", r.FileName())
}

func TestCountActive(t *testing.T) {
	resumes := []Resume{
		{ID: 1, IsActive: true},
		{ID: 2},
		{ID: 3, IsActive: true},
	}
	assert.Equal(t, 2, CountActive(resumes))
	assert.Equal(t, 0, CountActive(nil))
}

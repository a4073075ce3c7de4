package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-admin/apitest"
	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/session"
)

func loggedInStore(t *testing.T, api *apitest.Server) *session.Store {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.SetTokens(api.IssueToken(time.Hour), "refresh"))
	return store
}

func TestBearerTokenAttached(t *testing.T) {
	var authHeader string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer backend.Close()

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.SetTokens("the-access-token", "refresh"))

	c := New(backend.URL, store)
	var out []map[string]any
	require.NoError(t, c.Get(context.Background(), "/projects/", &out))

	assert.Equal(t, "Bearer the-access-token", authHeader)
}

func TestNoBearerWhenLoggedOut(t *testing.T) {
	var sawAuth bool
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization") != ""
		w.Write([]byte("{}"))
	}))
	defer backend.Close()

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	c := New(backend.URL, store)
	require.NoError(t, c.Get(context.Background(), "/contacts/", nil))

	assert.False(t, sawAuth)
}

func TestUnauthorizedClearsSessionAndFiresHandlerOnce(t *testing.T) {
	api := apitest.New()
	defer api.Close()

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.SetTokens(api.IssueToken(-time.Minute), "refresh"))

	var fired atomic.Int32
	c := New(api.URL(), store, WithUnauthorizedHandler(func() {
		fired.Add(1)
	}))

	// Several rejected calls in a row: every one errors, the session is
	// cleared, the handler fires exactly once.
	for i := 0; i < 3; i++ {
		err := c.Get(context.Background(), "/projects/", nil)
		require.Error(t, err)
		assert.True(t, errs.IsUnauthorized(err))
	}

	assert.Empty(t, store.Token())
	assert.Empty(t, store.RefreshToken())
	assert.Equal(t, int32(1), fired.Load())
}

func TestErrorBodyDecoded(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "projects not found"}`))
	}))
	defer backend.Close()

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	c := New(backend.URL, store)

	err := c.Get(context.Background(), "/projects/99/", nil)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Contains(t, err.Error(), "projects not found")
}

func TestTransportErrorWrapped(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	c := New("http://127.0.0.1:1", store)

	err := c.Get(context.Background(), "/projects/", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTransport)
}

func TestDownloadUsesDispositionFilename(t *testing.T) {
	api := apitest.New()
	defer api.Close()

	id := api.Seed("resumes", map[string]any{
		"title": "Resume", "file": "resumes/resume_2026.pdf",
	})
	api.SeedFile("resumes/resume_2026.pdf", []byte("%PDF-1.4 content"))

	c := New(api.URL(), loggedInStore(t, api))
	destDir := t.TempDir()

	saved, err := c.Download(context.Background(), fmt.Sprintf("/resumes/%d/download/", id), destDir, "fallback.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "resume_2026.pdf"), saved)

	content, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 content"), content)
}

func TestDownloadFallbackFilename(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No Content-Disposition header.
		w.Write([]byte("content"))
	}))
	defer backend.Close()

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	c := New(backend.URL, store)
	destDir := t.TempDir()

	saved, err := c.Download(context.Background(), "/resumes/1/download/", destDir, "resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "resume.pdf"), saved)
}

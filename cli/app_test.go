package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-admin/apitest"
	"github.com/rpupo63/portfolio-admin/manager"
	"github.com/rpupo63/portfolio-admin/session"
)

func newTestApp(t *testing.T, opts ...AppOption) (*App, *apitest.Server, *bytes.Buffer) {
	t.Helper()
	api := apitest.New()
	t.Cleanup(api.Close)

	cfg := map[string]string{
		"API_BASE_URL":           api.URL(),
		"PORTFOLIO_SESSION_FILE": filepath.Join(t.TempDir(), "session.json"),
	}

	var out bytes.Buffer
	base := []AppOption{
		WithStreams(strings.NewReader(""), &out),
		WithConfirmer(manager.AlwaysConfirm),
	}
	app := NewApp(cfg, append(base, opts...)...)
	return app, api, &out
}

func login(t *testing.T, app *App, api *apitest.Server) {
	t.Helper()
	err := app.Run(context.Background(), []string{
		"login", "-username", api.Username(), "-password", api.Password(),
	})
	require.NoError(t, err)
}

func TestLoginThenStatus(t *testing.T) {
	app, api, out := newTestApp(t)
	login(t, app, api)
	assert.Contains(t, out.String(), "Logged in.")

	out.Reset()
	require.NoError(t, app.Run(context.Background(), []string{"status"}))
	assert.Contains(t, out.String(), "session expires")
}

func TestAdminCommandsGatedBySession(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Run(context.Background(), []string{"projects", "list"})
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)
}

func TestProjectsCreateAndList(t *testing.T) {
	app, api, out := newTestApp(t)
	login(t, app, api)
	out.Reset()

	err := app.Run(context.Background(), []string{
		"projects", "create", "-title", "Portfolio Site", "-technologies", "Go, React",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Created project 1.")
	assert.Contains(t, out.String(), "Portfolio Site")

	out.Reset()
	require.NoError(t, app.Run(context.Background(), []string{"projects", "list"}))
	assert.Contains(t, out.String(), "Portfolio Site")
}

func TestContactsReadMarksMessage(t *testing.T) {
	app, api, out := newTestApp(t)
	id := api.Seed("contacts", map[string]any{
		"name": "Ada", "email": "ada@example.com", "subject": "Hello", "message": "Hi",
	})
	login(t, app, api)
	out.Reset()

	require.NoError(t, app.Run(context.Background(), []string{"contacts", "read", "-id", fmt.Sprint(id)}))
	assert.Contains(t, out.String(), fmt.Sprintf("Marked message %d as read.", id))
	assert.Equal(t, 1, api.CountRequests("PATCH", fmt.Sprintf("/contacts/%d/", id)))
	assert.Equal(t, true, api.Items("contacts")[0]["read"])
}

func TestDeleteDeclinedAborts(t *testing.T) {
	decline := manager.ConfirmFunc(func(string, string) bool { return false })
	app, api, out := newTestApp(t, WithConfirmer(decline))
	id := api.Seed("projects", map[string]any{"title": "Site"})
	login(t, app, api)
	out.Reset()
	api.ResetRequests()

	require.NoError(t, app.Run(context.Background(), []string{"projects", "delete", "-id", fmt.Sprint(id)}))
	assert.Contains(t, out.String(), "Aborted.")
	assert.Equal(t, 0, api.CountRequests("DELETE", "/projects/"))
}

func TestContactFormIsPublic(t *testing.T) {
	app, api, out := newTestApp(t)

	// No login beforehand.
	err := app.Run(context.Background(), []string{
		"contact-form", "-name", "Ada", "-email", "ada@example.com",
		"-subject", "Hello", "-message", "Nice site",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Thanks Ada")
	require.Len(t, api.Items("contacts"), 1)
	assert.Equal(t, false, api.Items("contacts")[0]["read"])
}

func TestDashboardRendersCountsAndFailures(t *testing.T) {
	app, api, out := newTestApp(t)
	api.Seed("projects", map[string]any{"title": "Site"})
	api.Seed("contacts", map[string]any{"name": "Ada", "subject": "Hello"})
	api.FailCollection("skills", true)
	login(t, app, api)
	out.Reset()

	require.NoError(t, app.Run(context.Background(), []string{"dashboard"}))

	rendered := out.String()
	assert.Contains(t, rendered, "projects")
	assert.Contains(t, rendered, "unavailable")
	assert.Contains(t, rendered, "Recent activity:")
}

func TestExpiredSessionSendsBackToLogin(t *testing.T) {
	app, api, _ := newTestApp(t)
	login(t, app, api)

	// Replace the access token with an expired one; the guard notices
	// before any admin request goes out.
	require.NoError(t, app.store.SetTokens(api.IssueToken(-1), "refresh"))

	err := app.Run(context.Background(), []string{"projects", "list"})
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)
	assert.Equal(t, 0, api.CountRequests("GET", "/projects/"))
}

func TestUnknownCommandShowsUsage(t *testing.T) {
	app, api, out := newTestApp(t)
	login(t, app, api)
	out.Reset()

	err := app.Run(context.Background(), []string{"bogus"})
	require.Error(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

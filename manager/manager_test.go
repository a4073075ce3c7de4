package manager

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-admin/apitest"
	"github.com/rpupo63/portfolio-admin/client"
	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/session"
)

func newProjectManager(t *testing.T, opts ...Option[models.Project]) (*Manager[models.Project], *apitest.Server) {
	t.Helper()
	api := apitest.New()
	t.Cleanup(api.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.SetTokens(api.IssueToken(time.Hour), "refresh"))

	cl := client.New(api.URL(), store)
	return New[models.Project](cl, Descriptor{Name: "project", Path: "/projects/"}, opts...), api
}

func TestListCachesItems(t *testing.T) {
	mgr, api := newProjectManager(t)
	api.Seed("projects", map[string]any{"title": "Site"})
	api.Seed("projects", map[string]any{"title": "CLI"})

	items, err := mgr.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Site", items[0].Title)

	cached := mgr.Items()
	assert.Equal(t, items, cached)
}

func TestCreatePostsOnceAndRefreshes(t *testing.T) {
	mgr, api := newProjectManager(t)

	created, err := mgr.Create(context.Background(), models.ProjectForm{
		Title:        "Site",
		Technologies: "Go, React",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.Key())
	assert.Equal(t, []string{"Go", "React"}, created.Technologies)

	// Exactly one POST, and the read-after-write list fetch happened.
	assert.Equal(t, 1, api.CountRequests("POST", "/projects/"))
	assert.Equal(t, 1, api.CountRequests("GET", "/projects/"))
	assert.Len(t, mgr.Items(), 1)
}

func TestCreateValidationSendsNothing(t *testing.T) {
	mgr, api := newProjectManager(t)

	_, err := mgr.Create(context.Background(), models.ProjectForm{Title: ""})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMissingRequiredField)
	assert.Empty(t, api.Requests())
}

func TestUpdateReplacesRecord(t *testing.T) {
	mgr, api := newProjectManager(t)
	id := api.Seed("projects", map[string]any{"title": "Old"})

	updated, err := mgr.Update(context.Background(), id, models.ProjectForm{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, 1, api.CountRequests("PUT", fmt.Sprintf("/projects/%d/", id)))
}

func TestPatchTogglesField(t *testing.T) {
	mgr, api := newProjectManager(t)
	id := api.Seed("projects", map[string]any{"title": "Site", "featured": false})

	updated, err := mgr.Patch(context.Background(), id, map[string]any{"featured": true})
	require.NoError(t, err)
	assert.True(t, updated.Featured)
	assert.Equal(t, 1, api.CountRequests("PATCH", fmt.Sprintf("/projects/%d/", id)))
}

func TestRemoveConfirmed(t *testing.T) {
	mgr, api := newProjectManager(t)
	id := api.Seed("projects", map[string]any{"title": "Site"})

	require.NoError(t, mgr.Remove(context.Background(), id, AlwaysConfirm))
	assert.Equal(t, 1, api.CountRequests("DELETE", fmt.Sprintf("/projects/%d/", id)))
	assert.Empty(t, api.Items("projects"))
}

func TestRemoveDeclinedSendsNothing(t *testing.T) {
	mgr, api := newProjectManager(t)
	id := api.Seed("projects", map[string]any{"title": "Site"})

	decline := ConfirmFunc(func(title, description string) bool { return false })
	err := mgr.Remove(context.Background(), id, decline)

	assert.ErrorIs(t, err, ErrDeclined)
	assert.Equal(t, 0, api.CountRequests("DELETE", "/projects/"))
	assert.Len(t, api.Items("projects"), 1)
}

func TestWriteInFlightRejectsSecondWrite(t *testing.T) {
	mgr, _ := newProjectManager(t)

	release, err := mgr.acquireWrite()
	require.NoError(t, err)
	defer release()

	_, err = mgr.Create(context.Background(), models.ProjectForm{Title: "Site"})
	assert.ErrorIs(t, err, errs.ErrWriteInFlight)
}

func TestWriteGuardReleasesAfterWrite(t *testing.T) {
	mgr, _ := newProjectManager(t)

	for i := 0; i < 3; i++ {
		_, err := mgr.Create(context.Background(), models.ProjectForm{Title: fmt.Sprintf("Site %d", i)})
		require.NoError(t, err)
	}
	assert.Len(t, mgr.Items(), 3)
}

func TestListHookRunsAfterFetch(t *testing.T) {
	var seen []models.Project
	hook := func(items []models.Project) { seen = items }

	mgr, api := newProjectManager(t, WithListHook[models.Project](hook))
	api.Seed("projects", map[string]any{"title": "Site"})

	_, err := mgr.List(context.Background())
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, "Site", seen[0].Title)
}

func TestListFailureSurfaced(t *testing.T) {
	mgr, api := newProjectManager(t)
	api.FailCollection("projects", true)

	_, err := mgr.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, 500, errs.StatusOf(err))
}

func TestTerminalConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"whatever\n", false},
	}

	for _, tc := range tests {
		in := bytes.NewBufferString(tc.input)
		var out bytes.Buffer
		confirmer := TerminalConfirmer{In: in, Out: &out}

		got := confirmer.Confirm("Delete project 1", "This cannot be undone.")
		assert.Equal(t, tc.want, got, "input %q", tc.input)
		assert.Contains(t, out.String(), "Delete project 1")
	}
}

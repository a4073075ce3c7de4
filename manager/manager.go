// Package manager implements the one resource-manager engine behind every
// admin screen: list, create, update, partial update, confirmed delete and
// download, generic over the resource type. Eight near-identical managers
// collapse into this engine plus a descriptor per resource.
package manager

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-admin/client"
	"github.com/rpupo63/portfolio-admin/errs"
)

// Resource is any record with server-assigned identity.
type Resource interface {
	Key() int
}

// Form is a validated, encodable write payload. Encode picks JSON or
// multipart depending on whether the form carries a file.
type Form interface {
	Validate() error
	Encode() (*client.Body, error)
}

// Descriptor names a resource and its collection path.
type Descriptor struct {
	// Name is the singular resource name used in logs and prompts.
	Name string
	// Path is the collection path including the trailing slash, e.g. "/projects/".
	Path string
}

func (d Descriptor) itemPath(id int) string {
	return fmt.Sprintf("%s%d/", d.Path, id)
}

// Manager drives one resource collection. It holds only a transient cached
// copy of the last list fetch; every mutation re-fetches (read-after-write)
// rather than merging optimistically. At most one write runs at a time.
type Manager[R Resource] struct {
	client   *client.Client
	desc     Descriptor
	logger   zerolog.Logger
	writing  atomic.Bool
	listHook func([]R)

	mu    sync.Mutex
	items []R
}

type Option[R Resource] func(*Manager[R])

// WithListHook runs after every successful list fetch, used for advisory
// checks such as the multiple-active-resumes warning.
func WithListHook[R Resource](hook func([]R)) Option[R] {
	return func(m *Manager[R]) {
		m.listHook = hook
	}
}

func New[R Resource](cl *client.Client, desc Descriptor, opts ...Option[R]) *Manager[R] {
	m := &Manager[R]{
		client: cl,
		desc:   desc,
		logger: log.With().Str("manager", desc.Name).Logger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Describe returns the manager's descriptor.
func (m *Manager[R]) Describe() Descriptor {
	return m.desc
}

// List fetches the collection. Failures are surfaced for a manual retry,
// never retried automatically.
func (m *Manager[R]) List(ctx context.Context) ([]R, error) {
	var items []R
	if err := m.client.Get(ctx, m.desc.Path, &items); err != nil {
		m.logger.Error().Err(err).Msg("List fetch failed")
		return nil, err
	}

	m.mu.Lock()
	m.items = items
	m.mu.Unlock()

	if m.listHook != nil {
		m.listHook(items)
	}
	return items, nil
}

// Items returns the last fetched list. The cache is per-manager and
// transient; it is discarded implicitly by the next List.
func (m *Manager[R]) Items() []R {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]R, len(m.items))
	copy(out, m.items)
	return out
}

// Create validates and submits a new record, then re-fetches the list so the
// caller observes its own write. On failure the form value is untouched for
// resubmission.
func (m *Manager[R]) Create(ctx context.Context, form Form) (R, error) {
	var zero R
	if err := form.Validate(); err != nil {
		return zero, err
	}

	release, err := m.acquireWrite()
	if err != nil {
		return zero, err
	}
	defer release()

	body, err := form.Encode()
	if err != nil {
		return zero, err
	}

	var created R
	if err := m.client.Post(ctx, m.desc.Path, body, &created); err != nil {
		m.logger.Error().Err(err).Msg("Create failed")
		return zero, err
	}

	if _, err := m.List(ctx); err != nil {
		// The write landed; only the refresh failed.
		m.logger.Warn().Err(err).Msg("List refresh after create failed")
	}

	m.logger.Info().Int("id", created.Key()).Msg("Created")
	return created, nil
}

// Update replaces an existing record, same encoding rule as Create.
func (m *Manager[R]) Update(ctx context.Context, id int, form Form) (R, error) {
	var zero R
	if err := form.Validate(); err != nil {
		return zero, err
	}

	release, err := m.acquireWrite()
	if err != nil {
		return zero, err
	}
	defer release()

	body, err := form.Encode()
	if err != nil {
		return zero, err
	}

	var updated R
	if err := m.client.Put(ctx, m.desc.itemPath(id), body, &updated); err != nil {
		m.logger.Error().Err(err).Int("id", id).Msg("Update failed")
		return zero, err
	}

	if _, err := m.List(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("List refresh after update failed")
	}

	m.logger.Info().Int("id", id).Msg("Updated")
	return updated, nil
}

// Patch sends a partial update for toggle-style fields (mark-as-read,
// set-active, publish) without resubmitting the whole form.
func (m *Manager[R]) Patch(ctx context.Context, id int, fields map[string]any) (R, error) {
	var zero R

	release, err := m.acquireWrite()
	if err != nil {
		return zero, err
	}
	defer release()

	var updated R
	if err := m.client.Patch(ctx, m.desc.itemPath(id), fields, &updated); err != nil {
		m.logger.Error().Err(err).Int("id", id).Msg("Patch failed")
		return zero, err
	}

	if _, err := m.List(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("List refresh after patch failed")
	}
	return updated, nil
}

// Remove deletes a record, but only after the confirmer approves. Declining
// sends nothing and returns ErrDeclined.
func (m *Manager[R]) Remove(ctx context.Context, id int, confirm Confirmer) error {
	prompt := fmt.Sprintf("Delete %s %d", m.desc.Name, id)
	detail := fmt.Sprintf("This permanently deletes the %s. This cannot be undone.", m.desc.Name)
	if !confirm.Confirm(prompt, detail) {
		return ErrDeclined
	}

	release, err := m.acquireWrite()
	if err != nil {
		return err
	}
	defer release()

	if err := m.client.Delete(ctx, m.desc.itemPath(id)); err != nil {
		m.logger.Error().Err(err).Int("id", id).Msg("Delete failed")
		return err
	}

	if _, err := m.List(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("List refresh after delete failed")
	}

	m.logger.Info().Int("id", id).Msg("Deleted")
	return nil
}

// Download fetches a record's binary attachment and saves it under destDir
// as fallbackName unless the server names the file itself. Only resumes
// expose a download route.
func (m *Manager[R]) Download(ctx context.Context, id int, destDir, fallbackName string) (string, error) {
	downloadPath := fmt.Sprintf("%s%d/download/", m.desc.Path, id)
	return m.client.Download(ctx, downloadPath, destDir, fallbackName)
}

// acquireWrite fails fast when another write is outstanding, the moral
// equivalent of disabling the submit button while a save is in flight.
func (m *Manager[R]) acquireWrite() (func(), error) {
	if !m.writing.CompareAndSwap(false, true) {
		return nil, errs.ErrWriteInFlight
	}
	return func() { m.writing.Store(false) }, nil
}

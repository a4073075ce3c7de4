// Package session holds the admin session: a durable token store and the
// expiry guard derived from it. The store is the sole source of truth for
// "am I logged in" — absence of an access token means logged out.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// state is the on-disk shape of the session file. Key names follow the
// storage keys the admin UI has always used.
type state struct {
	AccessToken   string `json:"adminToken,omitempty"`
	RefreshToken  string `json:"adminRefreshToken,omitempty"`
	CompactOutput bool   `json:"compactOutput,omitempty"`
}

// Store persists the session in a single JSON file so it survives process
// restarts. Every read goes back to disk, mirroring how the admin routes
// re-read storage on each navigation. The file holds plaintext tokens with
// no encryption or scoping — acceptable for a single-admin personal tool,
// a security-hygiene gap anywhere else.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the session file under the user config directory, or
// the working directory when none exists.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".portfolio-admin.json"
	}
	return filepath.Join(configDir, "portfolio-admin", "session.json")
}

// SetTokens persists both tokens. Either may be empty, though a normal login
// always supplies both.
func (s *Store) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.load()
	st.AccessToken = access
	st.RefreshToken = refresh
	return s.save(st)
}

// Token returns the persisted access token, or the empty string when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().AccessToken
}

// RefreshToken returns the persisted refresh token, or the empty string.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().RefreshToken
}

// ClearTokens removes both tokens. UI preferences survive a logout.
func (s *Store) ClearTokens() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.load()
	st.AccessToken = ""
	st.RefreshToken = ""
	return s.save(st)
}

// SetCompactOutput persists the one UI preference the tool keeps.
func (s *Store) SetCompactOutput(compact bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.load()
	st.CompactOutput = compact
	return s.save(st)
}

func (s *Store) CompactOutput() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().CompactOutput
}

// load reads the session file. A missing or unreadable file is an empty
// session, never an error: the caller is simply logged out.
func (s *Store) load() state {
	var st state
	data, err := os.ReadFile(s.path)
	if err != nil {
		return st
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return state{}
	}
	return st
}

func (s *Store) save(st state) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating session directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// ErrNotLoggedIn is returned by operations that need a session when the
// store holds no access token.
var ErrNotLoggedIn = errors.New("not logged in")

package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-admin/errs"
)

// Credentials is the payload for the token obtain endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenPairResponse is the response from POST /auth/token/.
type tokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// refreshResponse is the response from POST /auth/token/refresh/.
type refreshResponse struct {
	Access string `json:"access"`
}

// Service exchanges credentials for tokens against the public auth endpoints
// and persists the result. It deliberately uses its own plain HTTP client:
// auth endpoints are public and must not run through the bearer-attaching
// client, whose 401 handling would clear the session mid-login.
type Service struct {
	baseURL    string
	httpClient *http.Client
	store      *Store
	logger     zerolog.Logger
}

func NewService(baseURL string, store *Store) *Service {
	logger := log.With().Str("component", "session").Logger()
	return &Service{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
		logger:     logger,
	}
}

// Login obtains an access/refresh pair and persists both.
func (s *Service) Login(ctx context.Context, creds Credentials) error {
	var pair tokenPairResponse
	if err := s.post(ctx, "/auth/token/", creds, &pair); err != nil {
		return err
	}

	if pair.Access == "" {
		return errs.NewBadRequestError("token endpoint returned no access token")
	}

	if err := s.store.SetTokens(pair.Access, pair.Refresh); err != nil {
		return err
	}

	s.logger.Info().Msg("Logged in")
	return nil
}

// Refresh exchanges the stored refresh token for a new access token. It is
// only ever user-triggered; nothing retries it automatically on 401.
func (s *Service) Refresh(ctx context.Context) error {
	refreshToken := s.store.RefreshToken()
	if refreshToken == "" {
		return ErrNotLoggedIn
	}

	payload := map[string]string{"refresh": refreshToken}
	var refreshed refreshResponse
	if err := s.post(ctx, "/auth/token/refresh/", payload, &refreshed); err != nil {
		return err
	}

	if refreshed.Access == "" {
		return errs.NewBadRequestError("refresh endpoint returned no access token")
	}

	if err := s.store.SetTokens(refreshed.Access, refreshToken); err != nil {
		return err
	}

	s.logger.Info().Msg("Access token refreshed")
	return nil
}

// Logout drops both tokens.
func (s *Service) Logout() error {
	if err := s.store.ClearTokens(); err != nil {
		return err
	}
	s.logger.Info().Msg("Logged out")
	return nil
}

func (s *Service) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling %s payload: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errs.NewTransportError("POST "+path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.NewTransportError("POST "+path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("Auth request rejected")
		return errs.Decode(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

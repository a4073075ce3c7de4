// Package client wraps the portfolio API behind a single configured HTTP
// client. Every privileged call attaches the stored bearer token; any 401
// clears the session and fires the unauthorized handler exactly once.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/session"
)

// Client is the authenticated HTTP client for the portfolio API.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	store        *session.Store
	logger       zerolog.Logger
	unauthorized func()
	once         sync.Once
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUnauthorizedHandler installs the hook fired after a 401 clears the
// session. It runs at most once per client, so a burst of rejected calls
// cannot loop through it.
func WithUnauthorizedHandler(handler func()) Option {
	return func(c *Client) {
		c.unauthorized = handler
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(baseURL string, store *session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		store:      store,
		logger:     log.With().Str("component", "apiClient").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body *Body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body *Body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Patch sends a partial update. Used for toggle-style fields that must not
// require re-submitting the whole form.
func (c *Client) Patch(ctx context.Context, path string, fields map[string]any, out any) error {
	body, err := JSONBody(fields)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body *Body, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.NewTransportError(method+" "+path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.Decode(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// Download fetches a binary response and saves it under destDir. The
// filename comes from the Content-Disposition header when the server sends
// one, falling back to the caller-supplied name (the stored file path's
// final segment). Returns the path written.
func (c *Client) Download(ctx context.Context, path, destDir, fallbackName string) (string, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", errs.Decode(resp.StatusCode, respBody)
	}

	name := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = fallbackName
	}
	if name == "" {
		return "", errs.NewBadRequestError("no filename for download")
	}

	dest := filepath.Join(destDir, filepath.Base(name))
	file, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return "", fmt.Errorf("saving download to %s: %w", dest, err)
	}

	c.logger.Info().Str("path", dest).Msg("Download saved")
	return dest, nil
}

// send builds and issues one request, handling bearer attachment and the
// global 401 path. The caller owns the response body on success.
func (c *Client) send(ctx context.Context, method, path string, body *Body) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = body.Reader
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s %s request: %w", method, path, err)
	}

	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", body.ContentType)
	}
	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("Request failed")
		return nil, errs.NewTransportError(method+" "+path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		c.handleUnauthorized(method, path)
		return nil, errs.Decode(http.StatusUnauthorized, respBody)
	}

	return resp, nil
}

// handleUnauthorized clears the session and fires the configured handler.
// The sync.Once guarantees this happens exactly once per client no matter
// how many rejected responses come back, so the logout path cannot loop.
func (c *Client) handleUnauthorized(method, path string) {
	c.once.Do(func() {
		c.logger.Warn().Str("method", method).Str("path", path).Msg("Authorization rejected, clearing session")
		if err := c.store.ClearTokens(); err != nil {
			c.logger.Error().Err(err).Msg("Failed to clear session tokens")
		}
		if c.unauthorized != nil {
			c.unauthorized()
		}
	})
}

func filenameFromDisposition(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}

// Package api is the HTTP client for the tutorial generator backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"github.com/julianshen/codexplain/internal/logger"
	"github.com/julianshen/codexplain/internal/tutorial"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:8000"

	DefaultGenerateTimeout = 5 * time.Minute
	DefaultFetchTimeout    = 30 * time.Second
	DefaultCompatible      = ">=1.0.0, <2.0.0"

	maxResponseSize = 10 << 20 // 10 MB
)

// Client talks to the backend REST API. It is safe for concurrent use.
type Client struct {
	baseURL         string
	http            *http.Client
	userAgent       string
	generateTimeout time.Duration
	fetchTimeout    time.Duration
	compatible      *semver.Constraints
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeouts sets the generation and fetch deadlines. Zero keeps the default.
func WithTimeouts(generate, fetch time.Duration) Option {
	return func(c *Client) {
		if generate > 0 {
			c.generateTimeout = generate
		}
		if fetch > 0 {
			c.fetchTimeout = fetch
		}
	}
}

// WithCompatibleVersions sets the semver constraint the backend version must
// satisfy. An unparseable constraint keeps the default.
func WithCompatibleVersions(constraint string) Option {
	return func(c *Client) {
		if cs, err := semver.NewConstraint(constraint); err == nil {
			c.compatible = cs
		}
	}
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		http:            &http.Client{},
		userAgent:       "codexplain",
		generateTimeout: DefaultGenerateTimeout,
		fetchTimeout:    DefaultFetchTimeout,
	}
	c.compatible, _ = semver.NewConstraint(DefaultCompatible)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// GenerateTutorial submits req via POST /api/generate-tutorial and returns
// the id of the generated tutorial.
func (c *Client) GenerateTutorial(ctx context.Context, req tutorial.GenerationRequest) (string, error) {
	body, err := json.Marshal(req.Normalized())
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, c.generateTimeout, http.MethodPost, "/api/generate-tutorial", body, &result); err != nil {
		return "", fmt.Errorf("generating tutorial: %w", err)
	}
	if strings.TrimSpace(result.ID) == "" {
		return "", fmt.Errorf("generating tutorial: %w", ErrMissingID)
	}
	return result.ID, nil
}

// GetTutorial fetches a tutorial via GET /api/tutorials/{id}. The returned
// tutorial always carries the requested id, whatever the body says.
func (c *Client) GetTutorial(ctx context.Context, id string) (*tutorial.Tutorial, error) {
	var t tutorial.Tutorial
	path := "/api/tutorials/" + url.PathEscape(id)
	if err := c.do(ctx, c.fetchTimeout, http.MethodGet, path, nil, &t); err != nil {
		return nil, fmt.Errorf("fetching tutorial %q: %w", id, err)
	}
	t.ID = id
	return &t, nil
}

// Health is the backend's GET /api/health payload.
type Health struct {
	Status  string `json:"status" yaml:"status"`
	Version string `json:"version" yaml:"version"`
	// Compatible is set by CheckHealth.
	Compatible bool `json:"compatible" yaml:"compatible"`
}

// CheckHealth probes GET /api/health and checks the reported version against
// the configured constraint. On a version mismatch the Health is returned
// together with an error wrapping ErrIncompatibleBackend.
func (c *Client) CheckHealth(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, c.fetchTimeout, http.MethodGet, "/api/health", nil, &h); err != nil {
		return nil, fmt.Errorf("checking health: %w", err)
	}

	v, err := semver.NewVersion(h.Version)
	if err != nil {
		return &h, fmt.Errorf("%w: unparseable version %q", ErrIncompatibleBackend, h.Version)
	}
	if c.compatible != nil && !c.compatible.Check(v) {
		return &h, fmt.Errorf("%w: %s does not satisfy %s", ErrIncompatibleBackend, v, c.compatible)
	}
	h.Compatible = true
	return &h, nil
}

func (c *Client) do(ctx context.Context, timeout time.Duration, method, path string, body []byte, out any) error {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug(ctx, "api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return mapContextError(ctx, reqCtx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	logger.Debug(ctx, "api request",
		"method", method,
		"path", path,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	if err != nil {
		return mapContextError(ctx, reqCtx, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// mapContextError turns a deadline hit on the per-request context into
// ErrTimeout. Cancellation by the caller is passed through untouched.
func mapContextError(parent, reqCtx context.Context, err error) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}

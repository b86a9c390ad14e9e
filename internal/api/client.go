// internal/api/client.go
//
// The HTTP adapter every remote call goes through. It attaches the
// bearer token and cache hints, classifies failures, and funnels 401s
// into the session teardown hook. Single-shot per call: no retry or
// queueing lives here, retrying is a user affordance in the TUI.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for the auth arms of the taxonomy.
var (
	// ErrUnauthorized: the session credential was rejected (401). The
	// OnUnauthorized hook has already been invoked when this returns.
	ErrUnauthorized = errors.New("api: unauthorized")

	// ErrForbidden: the action is blocked for this role (403). The
	// session is retained.
	ErrForbidden = errors.New("api: forbidden")
)

// Error is a non-2xx response outside the auth arms, carrying the
// server-provided message when one was present.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Retryable reports whether the failure is worth a manual retry (5xx),
// as opposed to a validation failure the user must correct.
func (e *Error) Retryable() bool {
	return e.Status >= http.StatusInternalServerError
}

// TokenSource yields the current bearer token, or "" when anonymous.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a function into a TokenSource.
type TokenSourceFunc func() string

// Token returns f().
func (f TokenSourceFunc) Token() string {
	if f == nil {
		return ""
	}
	return f()
}

// Logger records request lines. Matches logbook's Request signature.
type Logger interface {
	Request(method, path string, status int, elapsed time.Duration)
}

// Option customizes Client construction.
type Option func(*Client)

// WithHTTPClient overrides the transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTokenSource wires the session's token into outgoing requests.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithCacheMaxAge sets the advisory Cache-Control TTL on GET requests.
func WithCacheMaxAge(ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheMaxAge = ttl
	}
}

// WithOnUnauthorized registers the hook invoked on any 401 before
// ErrUnauthorized is returned. The session store hangs its teardown
// here so an expired credential logs the user out regardless of which
// request noticed it.
func WithOnUnauthorized(hook func()) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

// WithLogger records one line per round trip.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client is the storefront API client. Endpoint families hang off it
// as typed services.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	cacheMaxAge    time.Duration
	onUnauthorized func()
	logger         Logger

	Auth      *AuthService
	Cookies   *CookieService
	Orders    *OrderService
	Customers *CustomerService
	Cart      *CartService
}

// NewClient constructs a client rooted at baseURL (no trailing slash).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.Auth = &AuthService{client: c}
	c.Cookies = &CookieService{client: c}
	c.Orders = &OrderService{client: c}
	c.Customers = &CustomerService{client: c}
	c.Cart = &CartService{client: c}
	return c
}

// do performs one round trip. body is JSON-marshalled when non-nil;
// out is JSON-unmarshalled from a 2xx body when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	switch method {
	case http.MethodGet:
		if c.cacheMaxAge > 0 {
			req.Header.Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.cacheMaxAge.Seconds())))
		}
	default:
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logRequest(method, path, 0, start)
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.logRequest(method, path, resp.StatusCode, start)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read %s %s: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", method, path, ErrForbidden)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &Error{Status: resp.StatusCode, Message: serverMessage(data, resp.Status)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) logRequest(method, path string, status int, start time.Time) {
	if c.logger == nil {
		return
	}
	c.logger.Request(method, path, status, time.Since(start))
}

// serverMessage extracts the server-provided failure text: a JSON
// {"message"|"error": …} body, plain text, or the transport status
// line when the body is empty.
func serverMessage(body []byte, statusText string) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return statusText
	}
	var envelope struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Err != "" {
			return envelope.Err
		}
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return statusText
	}
	return string(trimmed)
}

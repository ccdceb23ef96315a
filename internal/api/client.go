package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/sponsorhub/sponsorhub/internal/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 15 * time.Second

	// idempotencyHeader carries the duplicate-suppression key on mutations.
	idempotencyHeader = "Idempotency-Key"
)

// Client is an HTTP client for the Sponsorhub backend. All requests carry the
// session bearer token; paths are joined to the configured base URL under the
// role scope ("/admin", "/club", "/sponsor").
type Client struct {
	// BaseURL is the backend origin (e.g. "https://api.sponsorhub.it")
	BaseURL string

	// Scope is the role path prefix, without slashes (e.g. "admin")
	Scope string

	// Token is the bearer token of the current session
	Token string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a backend client for the given origin, role scope and
// session token.
func NewClient(baseURL, scope, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Scope:      strings.Trim(scope, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// scopedPath joins the base URL, role scope and resource path.
func (c *Client) scopedPath(path string) string {
	return fmt.Sprintf("%s/%s/%s", c.BaseURL, c.Scope, strings.TrimLeft(path, "/"))
}

// RequestOption mutates an outgoing request before it is sent.
type RequestOption func(*http.Request)

// WithIdempotencyKey attaches a duplicate-suppression key to a mutation.
func WithIdempotencyKey(key string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(idempotencyHeader, key)
	}
}

// do issues a request and returns the raw response body. Non-2xx responses
// and transport failures come back as *ClientError; this is the only place
// errors cross the HTTP boundary.
func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string, opts ...RequestOption) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, opt := range opts {
		opt(req)
	}

	logging.LogRequest(method, rawURL)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logging.Warn("API request failed",
			zap.String("method", method),
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	logging.LogResponse(method, rawURL, resp.StatusCode, len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp.StatusCode, extractServerMessage(respBody))
	}

	return respBody, nil
}

// extractServerMessage pulls the human-readable message out of an error
// payload. The backend is inconsistent: some endpoints use "error", others
// "message". Returns "" when neither is present.
func extractServerMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

// Get issues a GET and decodes the JSON response into out. Pass a nil out to
// discard the body.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, c.scopedPath(path), nil, "")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return newParseError("risposta del server non valida", err)
	}
	return nil
}

// GetRaw issues a GET and returns the raw body, for callers that normalize
// the shape themselves (list endpoints).
func (c *Client) GetRaw(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, c.scopedPath(path), nil, "")
}

// Post issues a JSON POST and decodes the response into out when non-nil.
func (c *Client) Post(ctx context.Context, path string, payload any, out any, opts ...RequestOption) error {
	return c.sendJSON(ctx, http.MethodPost, path, payload, out, opts...)
}

// Put issues a JSON PUT and decodes the response into out when non-nil.
func (c *Client) Put(ctx context.Context, path string, payload any, out any, opts ...RequestOption) error {
	return c.sendJSON(ctx, http.MethodPut, path, payload, out, opts...)
}

// Delete issues a DELETE and discards the response body.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	_, err := c.do(ctx, http.MethodDelete, c.scopedPath(path), nil, "", opts...)
	return err
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload any, out any, opts ...RequestOption) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return newParseError("impossibile serializzare la richiesta", err)
	}

	body, err := c.do(ctx, method, c.scopedPath(path), bytes.NewReader(data), "application/json", opts...)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return newParseError("risposta del server non valida", err)
	}
	return nil
}

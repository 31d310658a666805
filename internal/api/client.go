package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the current bearer token. An empty string means the
// caller is anonymous; anonymous endpoints still succeed.
type TokenSource func() string

// Client is the single dispatch point for every backend request: it attaches
// the bearer token and a request ID, and classifies failures into the error
// taxonomy in errors.go. No retries, no deduplication; each call is
// fire-once.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: normalizeBaseURL(baseURL),
		http:    &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tokens == nil {
		c.tokens = func() string { return "" }
	}
	return c
}

// BaseURL reports the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	endpoint := joinURL(c.baseURL, path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	token := c.tokens()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			"request_id", reqID, "method", method, "path", path, "error", err)
		return nil, &Error{Kind: KindNetwork, err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, err: err}
	}

	c.logger.Debug("request finished",
		"request_id", reqID, "method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 400 {
		return data, nil
	}
	return nil, c.classify(resp.StatusCode, data, token != "", path)
}

// classify maps a non-2xx response onto the error taxonomy. The transport
// only reports; the forced-logout policy for expired sessions lives in one
// observer at the command layer.
func (c *Client) classify(status int, body []byte, hadToken bool, path string) error {
	msg := serverMessage(body)
	switch status {
	case http.StatusUnauthorized:
		if hadToken {
			return &Error{Kind: KindSessionExpired, Status: status, Message: msg}
		}
		return &Error{Kind: KindAuthentication, Status: status, Message: msg}
	case http.StatusForbidden:
		c.logger.Warn("permission denied", "path", path, "status", status)
		return &Error{Kind: KindAuthorization, Status: status, Message: msg}
	default:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &Error{Kind: KindOperation, Status: status, Message: msg}
	}
}

// serverMessage extracts a human-readable message from an error body, when
// the backend provides one.
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		ErrMsg  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.ErrMsg
}

// envelope is the backend's uniform response wrapper; payloads live at
// data.data.
type envelope[T any] struct {
	Data struct {
		Data T `json:"data"`
	} `json:"data"`
}

func unwrap[T any](raw []byte) (T, error) {
	var env envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		var zero T
		return zero, fmt.Errorf("decode response: %w", err)
	}
	return env.Data.Data, nil
}

func get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	raw, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return unwrap[T](raw)
}

func post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	raw, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return unwrap[T](raw)
}

func joinURL(base, path string) string {
	return base + path
}

func normalizeBaseURL(in string) string {
	return strings.TrimRight(strings.TrimSpace(in), "/")
}

// Package api is the adapter between the client and the remote REST backend.
//
// Every exported operation performs exactly one HTTP call and returns either
// a validated domain record or an *Error whose Message can be shown as-is.
// The adapter never retries.
package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means the request is sent without Authorization.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

// Token implements TokenSource.
func (f TokenFunc) Token() string { return f() }

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
	reads   singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets an overall request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  TokenFunc(func() string { return "" }),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// request describes one backend call.
type request struct {
	op         string
	method     string
	path       string
	query      url.Values
	body       any
	defaultMsg string
}

// response is the raw result of a successful (2xx) call.
type response struct {
	status int
	body   []byte
}

func (r response) empty() bool {
	b := bytes.TrimSpace(r.body)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// do executes req. Identical concurrent GETs made under the same token share
// one network call. The shared call is detached from any single caller's
// cancellation; each caller stops waiting when its own ctx is done.
func (c *Client) do(ctx context.Context, req request) (response, error) {
	token := c.tokens.Token()
	if req.method != http.MethodGet {
		return c.send(ctx, req, token)
	}
	key := token + "\x00" + req.path + "?" + req.query.Encode()
	shared := context.WithoutCancel(ctx)
	ch := c.reads.DoChan(key, func() (any, error) {
		return c.send(shared, req, token)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return response{}, res.Err
		}
		return res.Val.(response), nil
	case <-ctx.Done():
		return response{}, transportError(req.op, ctx.Err())
	}
}

func (c *Client) send(ctx context.Context, req request, token string) (response, error) {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := sonic.ConfigStd.Marshal(req.body)
		if err != nil {
			return response{}, &Error{Kind: KindTransport, Message: req.defaultMsg, Op: req.op, Err: err}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return response{}, &Error{Kind: KindTransport, Message: req.defaultMsg, Op: req.op, Err: err}
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(RequestIDHeader, requestID)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Error("backend request failed", "op", req.op, "request_id", requestID, "error", err)
		return response{}, transportError(req.op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("reading backend response", "op", req.op, "request_id", requestID, "error", err)
		return response{}, transportError(req.op, err)
	}

	c.logger.Debug("backend request",
		"op", req.op,
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Kind:    KindBackend,
			Status:  resp.StatusCode,
			Message: errorMessage(data, req.defaultMsg),
			Op:      req.op,
		}
		c.logger.Warn("backend rejected request", "op", req.op, "request_id", requestID, "status", resp.StatusCode, "message", apiErr.Message)
		return response{}, apiErr
	}
	return response{status: resp.StatusCode, body: data}, nil
}

// errorMessage picks the most specific message from an error body: a JSON
// "message" field, then a bare text body, then the operation's default.
func errorMessage(body []byte, fallback string) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fallback
	}
	if trimmed[0] == '{' {
		var payload struct {
			Message string `json:"message"`
		}
		if err := sonic.ConfigStd.Unmarshal(trimmed, &payload); err == nil && strings.TrimSpace(payload.Message) != "" {
			return strings.TrimSpace(payload.Message)
		}
		return fallback
	}
	if trimmed[0] == '"' {
		var s string
		if err := sonic.ConfigStd.Unmarshal(trimmed, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		return fallback
	}
	if trimmed[0] == '[' || trimmed[0] == '<' {
		return fallback
	}
	return string(trimmed)
}

// decode unmarshals a 2xx body into a wire record and validates it.
func decode[W interface{ validate() error }](op string, resp response, out *W) error {
	if resp.empty() {
		return malformedError(op, resp.status, errEmptyBody)
	}
	if err := sonic.ConfigStd.Unmarshal(resp.body, out); err != nil {
		return malformedError(op, resp.status, err)
	}
	if err := (*out).validate(); err != nil {
		return malformedError(op, resp.status, err)
	}
	return nil
}

// decodeList unmarshals a 2xx JSON array, treating an empty or null body as
// an empty list, and validates every element.
func decodeList[W interface{ validate() error }](op string, resp response) ([]W, error) {
	if resp.empty() {
		return []W{}, nil
	}
	var items []W
	if err := sonic.ConfigStd.Unmarshal(resp.body, &items); err != nil {
		return nil, malformedError(op, resp.status, err)
	}
	for i := range items {
		if err := items[i].validate(); err != nil {
			return nil, malformedError(op, resp.status, err)
		}
	}
	if items == nil {
		items = []W{}
	}
	return items, nil
}

var errEmptyBody = errors.New("empty response body")

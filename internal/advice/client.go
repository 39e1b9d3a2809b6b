// Package advice talks to the AI service that suggests priorities and next
// steps for a task. Every failure is reported inside the response value;
// callers never see a Go error from GetTaskAdvice.
package advice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/thenoetrevino/taskdeck/internal/models"
)

// DefaultBaseURL is where the advice service runs when nothing is configured
const DefaultBaseURL = "http://localhost:5000"

const msgMalformed = "Malformed response from AI service"

// Cache stores successful advice keyed by request contents
type Cache interface {
	Get(ctx context.Context, req models.TaskAdviceRequest) (models.TaskAdviceResponse, bool)
	Put(ctx context.Context, req models.TaskAdviceRequest, resp models.TaskAdviceResponse)
}

// Client calls the advice service
type Client struct {
	baseURL string
	http    *http.Client
	cache   Cache
	logger  *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the transport
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout bounds each request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d, Transport: c.http.Transport}
		}
	}
}

// WithCache enables response caching
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the service at baseURL, or DefaultBaseURL
// when baseURL is empty.
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{baseURL: baseURL, http: &http.Client{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// failure builds the response returned for any unsuccessful call
func failure(msg string) models.TaskAdviceResponse {
	if msg == "" {
		msg = "Unknown error"
	}
	return models.TaskAdviceResponse{Success: false, Error: msg}
}

// GetTaskAdvice asks the service about one task.
func (c *Client) GetTaskAdvice(ctx context.Context, req models.TaskAdviceRequest) models.TaskAdviceResponse {
	if c.cache != nil {
		if resp, ok := c.cache.Get(ctx, req); ok {
			c.logger.Debug("advice cache hit", "task_id", req.TaskID)
			return resp
		}
	}

	resp, err := c.fetchAdvice(ctx, req)
	if err != nil {
		c.logger.Error("AI advice service error", "task_id", req.TaskID, "error", err)
		return failure(err.Error())
	}
	if !resp.Success {
		if resp.Error == "" {
			resp.Error = "AI service could not produce advice"
		}
		return resp
	}
	if c.cache != nil {
		c.cache.Put(ctx, req, resp)
	}
	return resp
}

func (c *Client) fetchAdvice(ctx context.Context, req models.TaskAdviceRequest) (models.TaskAdviceResponse, error) {
	payload, err := sonic.ConfigStd.Marshal(req)
	if err != nil {
		return models.TaskAdviceResponse{}, err
	}
	status, body, err := c.send(ctx, http.MethodPost, "/predict/advice", payload)
	if err != nil {
		return models.TaskAdviceResponse{}, err
	}
	if status < 200 || status > 299 {
		return models.TaskAdviceResponse{}, fmt.Errorf("AI service error: %s", statusText(status))
	}

	var resp models.TaskAdviceResponse
	if err := sonic.ConfigStd.Unmarshal(body, &resp); err != nil {
		return models.TaskAdviceResponse{}, fmt.Errorf("%s: %w", msgMalformed, err)
	}
	if resp.Success {
		if resp.Advice == nil {
			return models.TaskAdviceResponse{}, errors.New(msgMalformed + ": advice missing")
		}
		if err := resp.Advice.Validate(); err != nil {
			return models.TaskAdviceResponse{}, fmt.Errorf("%s: %w", msgMalformed, err)
		}
	}
	return resp, nil
}

func statusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", code)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}

// Health reports whether the service answers its health check.
func (c *Client) Health(ctx context.Context) bool {
	status, _, err := c.send(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		c.logger.Warn("AI service health check failed", "error", err)
		return false
	}
	return status >= 200 && status <= 299
}

// ConnectionStatus is the outcome of TestConnection
type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	Message   string `json:"message"`
}

// TestConnection runs the health check and describes the result.
func (c *Client) TestConnection(ctx context.Context) ConnectionStatus {
	if c.Health(ctx) {
		return ConnectionStatus{Connected: true, Message: "AI service is available and healthy"}
	}
	return ConnectionStatus{Connected: false, Message: "AI service is not responding to health checks"}
}

// Info describes where the client points
type Info struct {
	BaseURL    string `json:"baseURL"`
	Configured bool   `json:"configured"`
}

// ServiceInfo reports the base URL and whether it was changed from the default.
func (c *Client) ServiceInfo() Info {
	return Info{BaseURL: c.baseURL, Configured: c.baseURL != DefaultBaseURL}
}

package app

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/thenoetrevino/taskdeck/internal/session"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger         *slog.Logger
	store          session.Store
	httpClient     *http.Client
	tracerProvider trace.TracerProvider
	now            func() time.Time
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithSessionStore replaces the on-disk session database
func WithSessionStore(store session.Store) Option {
	return func(cfg *appConfig) {
		cfg.store = store
	}
}

// WithHTTPClient sets the transport used for backend and advice calls
func WithHTTPClient(h *http.Client) Option {
	return func(cfg *appConfig) {
		cfg.httpClient = h
	}
}

// WithTracerProvider sets where mutation spans are exported
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *appConfig) {
		cfg.tracerProvider = tp
	}
}

// WithClock sets the clock used for temporary ids and token expiry
func WithClock(now func() time.Time) Option {
	return func(cfg *appConfig) {
		cfg.now = now
	}
}

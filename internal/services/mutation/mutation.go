// Package mutation holds the policy shared by every optimistic coordinator:
// one mutation per entity at a time, a network phase that outlives the
// caller's context, a span per mutation and a queue for background failures.
package mutation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrInFlight is returned when an entity already has a mutation running.
var ErrInFlight = errors.New("a change to this item is already in progress")

const tracerName = "github.com/thenoetrevino/taskdeck/internal/services/mutation"

// Notifier receives messages for failures that are not returned to the caller.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(message string) { f(message) }

// Guard tracks which entity keys have a mutation in flight.
type Guard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewGuard creates an empty guard.
func NewGuard() *Guard {
	return &Guard{active: make(map[string]struct{})}
}

// Acquire marks key as busy. The returned release must be called exactly once.
func (g *Guard) Acquire(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return nil, ErrInFlight
	}
	g.active[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, nil
}

// Busy reports whether key has a mutation in flight.
func (g *Guard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.active[key]
	return busy
}

// TempIDs hands out provisional identifiers derived from the wall clock in
// Unix milliseconds, strictly increasing within the process.
type TempIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewTempIDs creates a generator. now may be nil to use time.Now.
func NewTempIDs(now func() time.Time) *TempIDs {
	if now == nil {
		now = time.Now
	}
	return &TempIDs{now: now}
}

// Next returns the next provisional id.
func (g *TempIDs) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Runner executes mutations under the shared policy. One Runner is shared by
// all coordinators so the in-flight guard spans the whole session.
type Runner struct {
	guard    *Guard
	ids      *TempIDs
	notifier Notifier
	logger   *slog.Logger
	tracer   trace.Tracer
}

// Option configures a Runner.
type Option func(*Runner)

// WithNotifier sets where background failures are reported.
func WithNotifier(n Notifier) Option {
	return func(r *Runner) {
		if n != nil {
			r.notifier = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTracerProvider sets the provider spans are created from.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Runner) {
		if tp != nil {
			r.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithClock sets the clock provisional ids are derived from.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.ids = NewTempIDs(now) }
}

// NewRunner creates a runner. Without options it logs to slog.Default,
// traces through the global provider and drops notifications.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		guard:    NewGuard(),
		ids:      NewTempIDs(nil),
		notifier: NotifierFunc(func(string) {}),
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TempID returns a provisional identifier.
func (r *Runner) TempID() int64 { return r.ids.Next() }

// Logger returns the runner's logger.
func (r *Runner) Logger() *slog.Logger { return r.logger }

// Busy reports whether entity/key has a mutation in flight.
func (r *Runner) Busy(entity, key string) bool {
	return r.guard.Busy(entity + ":" + key)
}

// Do runs fn as the single in-flight mutation for entity/key. fn gets a
// context that ignores the caller's cancellation. fn's error is returned.
func (r *Runner) Do(ctx context.Context, entity, op, key string, fn func(context.Context) error) error {
	release, err := r.guard.Acquire(entity + ":" + key)
	if err != nil {
		r.logger.Warn("mutation rejected", "entity", entity, "op", op, "key", key)
		return err
	}
	defer release()

	ctx, span := r.tracer.Start(context.WithoutCancel(ctx), entity+"."+op,
		trace.WithAttributes(
			attribute.String("entity.type", entity),
			attribute.String("entity.key", key),
		))
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("mutation.rolled_back", true))
		r.logger.Error("mutation failed", "entity", entity, "op", op, "key", key, "error", err)
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// DoNotify is Do for mutations whose failures are not returned: on failure
// fn has already rolled back, failMsg is queued on the notifier and nil is
// returned. ErrInFlight is still returned.
func (r *Runner) DoNotify(ctx context.Context, entity, op, key, failMsg string, fn func(context.Context) error) error {
	err := r.Do(ctx, entity, op, key, fn)
	if err == nil || errors.Is(err, ErrInFlight) {
		return err
	}
	r.notifier.Notify(failMsg)
	return nil
}

package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thenoetrevino/taskdeck/internal/advice"
	"github.com/thenoetrevino/taskdeck/internal/api"
	"github.com/thenoetrevino/taskdeck/internal/config"
	"github.com/thenoetrevino/taskdeck/internal/database"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/board"
	"github.com/thenoetrevino/taskdeck/internal/services/dashboard"
	"github.com/thenoetrevino/taskdeck/internal/services/mutation"
	"github.com/thenoetrevino/taskdeck/internal/services/profile"
	taskservice "github.com/thenoetrevino/taskdeck/internal/services/task"
	"github.com/thenoetrevino/taskdeck/internal/session"
	"github.com/thenoetrevino/taskdeck/internal/state"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	Config *config.Config
	logger *slog.Logger

	// Session and transport
	Session *session.Session
	API     *api.Client
	Advice  *advice.Client

	// Shared by every coordinator so in-flight markers and notifications
	// are application-wide
	Runner        *mutation.Runner
	Notifications *state.NotificationState

	Profile profile.Service

	db    *sql.DB
	redis *redis.Client
}

// New creates a new App with all services initialized and the session
// restored. This is the single entry point for creating the application container.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	options := appConfig{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(&options)
	}

	a := &App{Config: cfg, logger: options.logger}

	store := options.store
	if store == nil {
		path := cfg.SessionPath
		if path == "" {
			p, err := database.DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		db, err := database.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("opening session store: %w", err)
		}
		a.db = db
		store = database.NewKV(db)
	}

	a.Session = session.New(store, session.WithClock(options.now), session.WithLogger(options.logger))
	if err := a.Session.Load(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	apiOpts := []api.Option{
		api.WithTokenSource(api.TokenFunc(a.Session.Token)),
		api.WithLogger(options.logger),
	}
	if options.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(options.httpClient))
	}
	apiOpts = append(apiOpts, api.WithTimeout(cfg.HTTPTimeout))
	a.API = api.NewClient(cfg.BackendURL, apiOpts...)

	adviceOpts := []advice.Option{advice.WithLogger(options.logger)}
	if options.httpClient != nil {
		adviceOpts = append(adviceOpts, advice.WithHTTPClient(options.httpClient))
	}
	adviceOpts = append(adviceOpts, advice.WithTimeout(cfg.HTTPTimeout))
	if cfg.Cache.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		adviceOpts = append(adviceOpts, advice.WithCache(advice.NewRedisCache(a.redis, cfg.Cache.TTL, options.logger)))
	}
	a.Advice = advice.NewClient(cfg.AdviceURL, adviceOpts...)

	a.Notifications = state.NewNotificationState()
	runnerOpts := []mutation.Option{
		mutation.WithNotifier(a.Notifications),
		mutation.WithLogger(options.logger),
		mutation.WithClock(options.now),
	}
	if options.tracerProvider != nil {
		runnerOpts = append(runnerOpts, mutation.WithTracerProvider(options.tracerProvider))
	}
	a.Runner = mutation.NewRunner(runnerOpts...)

	a.Profile = profile.NewService(a.API, a.Session, a.Runner)
	return a, nil
}

// CurrentClient returns the signed-in client or session.ErrNotSignedIn
func (a *App) CurrentClient() (models.Client, error) {
	return a.Session.RequireClient()
}

// Dashboards returns a coordinator for the signed-in client's dashboards
func (a *App) Dashboards() (dashboard.Service, error) {
	c, err := a.CurrentClient()
	if err != nil {
		return nil, err
	}
	return dashboard.NewService(a.API, c.ID, a.Runner), nil
}

// Boards returns a coordinator for the boards of one dashboard
func (a *App) Boards(id types.DashboardID) board.ListService {
	return board.NewListService(a.API, id, a.Runner)
}

// Board returns a coordinator for one board
func (a *App) Board(id types.BoardID) board.Service {
	return board.NewService(a.API, id, a.Runner)
}

// Tasks returns a coordinator for a board's tasks. When seed is non-nil the
// coordinator starts from it instead of needing a Load.
func (a *App) Tasks(id types.BoardID, seed []models.Task) taskservice.Service {
	if seed != nil {
		return taskservice.NewServiceWithTasks(a.API, id, a.Runner, seed)
	}
	return taskservice.NewService(a.API, id, a.Runner)
}

// Close releases the session database and cache connection.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

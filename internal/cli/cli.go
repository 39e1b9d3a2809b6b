package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/taskdeck/internal/app"
	"github.com/thenoetrevino/taskdeck/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App   *app.App // Application container with services
	owned bool
}

type appKey struct{}

// WithApp returns a context carrying a prepared App. Commands run under it
// use that App instead of building their own, and do not close it.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// NewCLI loads the config and builds the App, restoring the saved session
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	application, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return &CLI{App: application, owned: true}, nil
}

// GetCLIFromContext returns the App injected with WithApp, or a new one
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
		return &CLI{App: a}, nil
	}
	return NewCLI(ctx)
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}

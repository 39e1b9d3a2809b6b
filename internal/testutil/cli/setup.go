// Package cli wires a fake backend and an App for CLI command tests.
// It lives apart from testutil so service tests can import testutil
// without pulling in the app package.
package cli

import (
	"context"
	"log/slog"
	"testing"

	"github.com/thenoetrevino/taskdeck/internal/app"
	"github.com/thenoetrevino/taskdeck/internal/config"
	"github.com/thenoetrevino/taskdeck/internal/database"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/testutil"
)

// SetupCLITest starts a fake backend and returns it with an App whose
// session lives in an in-memory store. The advice service points at
// adviceURL, or at an unreachable address when it is empty.
func SetupCLITest(t *testing.T, adviceURL string) (*testutil.Backend, *app.App) {
	t.Helper()
	backend := testutil.NewBackend(t)

	cfg := config.Default()
	cfg.BackendURL = backend.URL
	cfg.AdviceURL = adviceURL
	if cfg.AdviceURL == "" {
		cfg.AdviceURL = "http://127.0.0.1:1"
	}

	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open session store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	appInstance, err := app.New(context.Background(), cfg,
		app.WithSessionStore(database.NewKV(db)),
		app.WithLogger(slog.New(slog.DiscardHandler)),
	)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	t.Cleanup(func() { _ = appInstance.Close() })

	return backend, appInstance
}

// SignIn registers a client on the backend and logs in through the app,
// as 'taskdeck login' would. The password is "password1".
func SignIn(t *testing.T, backend *testutil.Backend, a *app.App) models.Client {
	t.Helper()
	backend.AddClient("Ann Lee", "ann@example.com", "555-0100", "password1")
	client, err := a.Profile.Login(context.Background(), "ann@example.com", "password1")
	if err != nil {
		t.Fatalf("Failed to sign in: %v", err)
	}
	return client
}

// SeedBoard creates a dashboard with one board for client and returns the board
func SeedBoard(t *testing.T, backend *testutil.Backend, client models.Client, tasks ...models.Task) models.Board {
	t.Helper()
	dash := backend.AddDashboard(client.ID, "Home")
	board := backend.AddBoard(dash.ID, "Sprint")
	for _, task := range tasks {
		board.Tasks = append(board.Tasks, backend.AddTask(board.ID, task))
	}
	return board
}

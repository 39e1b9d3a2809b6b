package board

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/testutil"
	clitest "github.com/thenoetrevino/taskdeck/internal/testutil/cli"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

func TestBoardCommands(t *testing.T) {
	t.Setenv(cli.EnvBoard, "")
	backend, app := clitest.SetupCLITest(t, "")
	client := clitest.SignIn(t, backend, app)
	board := clitest.SeedBoard(t, backend, client,
		models.Task{Name: "Write report", Status: models.StatusDone},
		models.Task{Name: "Call bank", Status: models.StatusNotDone},
		models.Task{Name: "Renew passport", Status: models.StatusOverdue},
	)
	boardID := board.ID.String()

	run := func(args ...string) (string, error) {
		return clitest.ExecuteCLICommand(t, app, BoardCmd(), args)
	}

	t.Run("show", func(t *testing.T) {
		output, err := run("show", boardID)
		require.NoError(t, err)
		assert.Contains(t, output, "Sprint")
		assert.Contains(t, output, "1/3 done (33%)")
		assert.Contains(t, output, "Renew passport")
	})

	t.Run("show json from environment", func(t *testing.T) {
		t.Setenv(cli.EnvBoard, boardID)
		output, err := run("show", "--json")
		require.NoError(t, err)
		result := testutil.ParseJSON(t, output)
		data, ok := result["board"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Sprint", data["name"])
		tasks, ok := data["task_list"].([]any)
		require.True(t, ok)
		assert.Len(t, tasks, 3)
	})

	t.Run("show unknown", func(t *testing.T) {
		_, err := run("show", "9999", "--quiet")
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})

	t.Run("show without board", func(t *testing.T) {
		_, err := run("show", "--quiet")
		require.Error(t, err)
		assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
	})

	t.Run("rename", func(t *testing.T) {
		output, err := run("rename", boardID, "Sprint", "13")
		require.NoError(t, err)
		assert.Contains(t, output, "renamed to Sprint 13")

		fetched, err := app.API.Board(t.Context(), board.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sprint 13", fetched.Name)
	})

	t.Run("rename failure restores name", func(t *testing.T) {
		backend.Fail("/board/updateBoardName/:id", 500, "boom")
		defer backend.Recover("/board/updateBoardName/:id")

		_, err := run("rename", boardID, "Nope", "--quiet")
		require.Error(t, err)
		assert.Equal(t, cli.ExitError, cli.ExitCode(err))
	})

	var created types.BoardID
	t.Run("create", func(t *testing.T) {
		output, err := run("create", "--dashboard", board.DashboardID.String(), "Backlog", "--quiet")
		require.NoError(t, err)
		n, err := strconv.Atoi(strings.TrimSpace(output))
		require.NoError(t, err)
		created = types.BoardID(n)
	})

	t.Run("create on unknown dashboard", func(t *testing.T) {
		_, err := run("create", "--dashboard", "9999", "Backlog", "--quiet")
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})

	t.Run("delete", func(t *testing.T) {
		require.True(t, created.Valid())
		output, err := run("delete", created.String(), "--yes")
		require.NoError(t, err)
		assert.Contains(t, output, "deleted successfully")

		_, err = app.API.Board(t.Context(), created)
		require.Error(t, err)
	})
}

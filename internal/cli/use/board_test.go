package use

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	clitest "github.com/thenoetrevino/taskdeck/internal/testutil/cli"
)

func TestUseBoard(t *testing.T) {
	t.Setenv(cli.EnvBoard, "")
	backend, app := clitest.SetupCLITest(t, "")
	client := clitest.SignIn(t, backend, app)
	board := clitest.SeedBoard(t, backend, client)

	run := func(args ...string) (string, error) {
		return clitest.ExecuteCLICommand(t, app, UseCmd(), args)
	}

	output, err := run("board", board.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "export TASKDECK_BOARD="+board.ID.String(), strings.TrimSpace(output))

	output, err = run("board", "--clear")
	require.NoError(t, err)
	assert.Equal(t, "unset TASKDECK_BOARD", strings.TrimSpace(output))

	output, err = run("board", board.ID.String(), "--dry-run")
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(output))

	t.Run("show", func(t *testing.T) {
		output, err := run("board", "--show")
		require.NoError(t, err)
		assert.Contains(t, output, "No board context set")

		t.Setenv(cli.EnvBoard, board.ID.String())
		output, err = run("board", "--show")
		require.NoError(t, err)
		assert.Contains(t, output, "Current board: "+board.ID.String()+" - Sprint")
	})

	t.Run("unknown board", func(t *testing.T) {
		_, err := run("board", "9999")
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := run("board")
		require.Error(t, err)
		assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
	})
}

package dashboard

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
)

func TestDashboardCommands(t *testing.T) {
	backend, app := clitest.SetupCLITest(t, "")
	client := clitest.SignIn(t, backend, app)
	board := clitest.SeedBoard(t, backend, client,
		models.Task{Name: "Write report", Status: models.StatusDone},
		models.Task{Name: "Call bank", Status: models.StatusNotDone},
	)

	run := func(args ...string) (string, error) {
		return clitest.ExecuteCLICommand(t, app, DashboardCmd(), args)
	}

	t.Run("list", func(t *testing.T) {
		output, err := run("list")
		require.NoError(t, err)
		assert.Contains(t, output, "Found 1 dashboards")
		assert.Contains(t, output, "Home (1 board)")
	})

	var created string
	t.Run("create", func(t *testing.T) {
		output, err := run("create", "Side", "projects", "--quiet")
		require.NoError(t, err)
		created = strings.TrimSpace(output)
		_, err = strconv.Atoi(created)
		require.NoError(t, err, "quiet output should be the dashboard id: %q", output)

		output, err = run("list", "--json")
		require.NoError(t, err)
		result := testutil.ParseJSON(t, output)
		dashboards, ok := result["dashboards"].([]any)
		require.True(t, ok)
		assert.Len(t, dashboards, 2)
	})

	t.Run("show", func(t *testing.T) {
		output, err := run("list", "--quiet")
		require.NoError(t, err)
		first := strings.Fields(output)[0]

		output, err = run("show", first)
		require.NoError(t, err)
		assert.Contains(t, output, "Dashboard "+first+": Home")
		assert.Contains(t, output, "Sprint (1/2 done)")

		output, err = run("show", first, "--quiet")
		require.NoError(t, err)
		assert.Equal(t, board.ID.String(), strings.TrimSpace(output))
	})

	t.Run("show unknown", func(t *testing.T) {
		_, err := run("show", "9999", "--quiet")
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})

	t.Run("delete", func(t *testing.T) {
		output, err := run("delete", created, "--yes")
		require.NoError(t, err)
		assert.Contains(t, output, "deleted successfully")

		output, err = run("list", "--quiet")
		require.NoError(t, err)
		assert.NotContains(t, strings.Fields(output), created)
	})

	t.Run("delete unknown", func(t *testing.T) {
		_, err := run("delete", "9999", "--quiet")
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})

	t.Run("create empty name", func(t *testing.T) {
		_, err := run("create", " ", "--quiet")
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	})
}

func TestDashboardCommands_NotSignedIn(t *testing.T) {
	_, app := clitest.SetupCLITest(t, "")

	_, err := clitest.ExecuteCLICommand(t, app, DashboardCmd(), []string{"list", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

	_, label := cli.Classify(err)
	assert.Equal(t, cli.CodeNotSignedIn, label)
}

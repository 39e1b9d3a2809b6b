package advice

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/testutil"
	clitest "github.com/thenoetrevino/taskdeck/internal/testutil/cli"
)

const goodAdvice = `{
  "success": true,
  "advice": {
    "status_prediction": "Done",
    "confidence_score": 0.8,
    "priority_recommendation": {"level": "High", "message": "Due soon", "estimated_days": 1.5},
    "actionable_suggestions": ["Block an hour today"],
    "risk_factors": ["Bank closes at 5"],
    "optimization_tips": [],
    "next_steps": ["Call before noon"]
  }
}`

// fakeAdvice serves the advice endpoints and keeps the last request body
func fakeAdvice(t *testing.T, status int, body string) (*httptest.Server, *models.TaskAdviceRequest) {
	t.Helper()
	var last models.TaskAdviceRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/predict/advice":
			raw, _ := io.ReadAll(r.Body)
			_ = sonic.ConfigStd.Unmarshal(raw, &last)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		case "/health":
			w.WriteHeader(status)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &last
}

func TestGetAdvice(t *testing.T) {
	t.Setenv(cli.EnvBoard, "")
	srv, last := fakeAdvice(t, http.StatusOK, goodAdvice)
	backend, app := clitest.SetupCLITest(t, srv.URL)
	client := clitest.SignIn(t, backend, app)
	board := clitest.SeedBoard(t, backend, client, models.Task{
		Name:        "Call bank",
		Description: "about the loan",
		Status:      models.StatusNotDone,
		DueDate:     models.NewDate(2026, 11, 2),
	})
	task := board.Tasks[0]

	output, err := clitest.ExecuteCLICommand(t, app, AdviceCmd(), []string{
		"get", task.ID.String(), "--board", board.ID.String(), "--json",
	})
	require.NoError(t, err)

	result := testutil.ParseJSON(t, output)
	resp, ok := result["advice"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, resp["success"])

	assert.Equal(t, task.ID, last.TaskID)
	assert.Equal(t, "Call bank", last.Name)
	assert.Equal(t, "2026-11-02", last.DueDate)
	assert.Equal(t, board.ID, last.BoardID)
	assert.Equal(t, "Sprint", last.BoardName)
	assert.Equal(t, client.ID, last.ClientID)

	output, err = clitest.ExecuteCLICommand(t, app, AdviceCmd(), []string{
		"get", task.ID.String(), "--board", board.ID.String(), "--quiet",
	})
	require.NoError(t, err)
	assert.Equal(t, "High", strings.TrimSpace(output))
}

func TestGetAdvice_ServiceFailure(t *testing.T) {
	t.Setenv(cli.EnvBoard, "")
	srv, _ := fakeAdvice(t, http.StatusInternalServerError, "oops")
	backend, app := clitest.SetupCLITest(t, srv.URL)
	client := clitest.SignIn(t, backend, app)
	board := clitest.SeedBoard(t, backend, client, models.Task{Name: "Call bank", Status: models.StatusNotDone})

	output, err := clitest.ExecuteCLICommand(t, app, AdviceCmd(), []string{
		"get", board.Tasks[0].ID.String(), "--board", board.ID.String(), "--json",
	})
	require.Error(t, err)
	assert.Equal(t, cli.ExitError, cli.ExitCode(err))
	assert.Equal(t, "AI service error: Internal Server Error", err.Error())

	result := testutil.ParseJSON(t, output)
	resp, ok := result["advice"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, resp["success"])
}

func TestGetAdvice_Errors(t *testing.T) {
	t.Setenv(cli.EnvBoard, "")
	backend, app := clitest.SetupCLITest(t, "")

	_, err := clitest.ExecuteCLICommand(t, app, AdviceCmd(), []string{"get", "1", "--board", "1", "--quiet"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err), "not signed in")

	client := clitest.SignIn(t, backend, app)
	board := clitest.SeedBoard(t, backend, client)

	_, err = clitest.ExecuteCLICommand(t, app, AdviceCmd(), []string{"get", "9999", "--board", board.ID.String(), "--quiet"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))

	_, err = clitest.ExecuteCLICommand(t, app, AdviceCmd(), []string{"get", "1", "--quiet"})
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrNoBoard)
}

func TestHealth(t *testing.T) {
	up, _ := fakeAdvice(t, http.StatusOK, "")
	_, app := clitest.SetupCLITest(t, up.URL)

	output, err := clitest.ExecuteCLICommand(t, app, AdviceCmd(), []string{"health", "--json"})
	require.NoError(t, err)
	result := testutil.ParseJSON(t, output)
	health, ok := result["health"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, health["connected"])
	assert.Equal(t, true, health["configured"])

	_, down := clitest.SetupCLITest(t, "")
	_, err = clitest.ExecuteCLICommand(t, down, AdviceCmd(), []string{"health", "--quiet"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitError, cli.ExitCode(err))
}

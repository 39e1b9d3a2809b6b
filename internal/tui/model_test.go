package tui

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/mutation"
	"github.com/thenoetrevino/taskdeck/internal/state"
	"github.com/thenoetrevino/taskdeck/internal/testutil"
	clitest "github.com/thenoetrevino/taskdeck/internal/testutil/cli"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = send(t, m, key(k))
	}
	return m
}

// run executes cmd and feeds its message back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	return m
}

func loadedModel(t *testing.T) (*testutil.Backend, Model, models.Board) {
	t.Helper()
	backend, a := clitest.SetupCLITest(t, "")
	client := clitest.SignIn(t, backend, a)
	b := clitest.SeedBoard(t, backend, client,
		models.Task{Name: "Call bank", Description: "about the loan", Status: models.StatusNotDone},
		models.Task{Name: "Pay rent", Description: "before the 1st", Status: models.StatusDone},
		models.Task{Name: "Renew passport", Description: "loan office is closed", Status: models.StatusOverdue},
	)

	m := NewModel(context.Background(), a, b.ID)
	assert.Equal(t, LoadingMode, m.Mode())
	assert.Contains(t, m.View().Content, "Loading board")

	m = run(t, m, m.Init())
	require.Equal(t, NormalMode, m.Mode())
	require.NoError(t, m.loadErr)
	return backend, m, b
}

func TestModel_Load(t *testing.T) {
	_, m, b := loadedModel(t)

	assert.Len(t, m.Visible(), 3)
	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, b.Tasks[0].ID, selected.ID)

	content := m.View().Content
	assert.Contains(t, content, "Sprint")
	assert.Contains(t, content, "Call bank")
	assert.Contains(t, content, "Renew passport")
}

func TestModel_LoadError(t *testing.T) {
	_, a := clitest.SetupCLITest(t, "")
	m := NewModel(context.Background(), a, 9999)

	m = run(t, m, m.Init())
	assert.Error(t, m.loadErr)
	assert.Equal(t, NormalMode, m.Mode())
	assert.Contains(t, m.View().Content, "to retry")

	m = press(t, m, "space", "d", "/")
	assert.Equal(t, NormalMode, m.Mode(), "no tasks to act on")
}

func TestModel_Navigation(t *testing.T) {
	_, m, b := loadedModel(t)

	m = press(t, m, "j")
	selected, _ := m.Selected()
	assert.Equal(t, b.Tasks[1].ID, selected.ID)

	m = press(t, m, "j", "j", "j")
	selected, _ = m.Selected()
	assert.Equal(t, b.Tasks[2].ID, selected.ID, "cursor stops at the last task")

	m = press(t, m, "k", "k", "k", "k")
	selected, _ = m.Selected()
	assert.Equal(t, b.Tasks[0].ID, selected.ID, "cursor stops at the first task")

	m = press(t, m, "?")
	assert.Equal(t, HelpMode, m.Mode())
	assert.Contains(t, m.View().Content, "toggle")
	m = press(t, m, "esc")
	assert.Equal(t, NormalMode, m.Mode())
}

func TestModel_Filter(t *testing.T) {
	_, m, b := loadedModel(t)

	m = press(t, m, "/")
	require.Equal(t, FilterMode, m.Mode())

	m = press(t, m, "L", "O", "A", "N")
	visible := m.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, b.Tasks[0].ID, visible[0].ID)
	assert.Equal(t, b.Tasks[2].ID, visible[1].ID)

	m = press(t, m, "enter")
	assert.Equal(t, NormalMode, m.Mode())
	assert.Len(t, m.Visible(), 2, "enter keeps the filter")

	m = press(t, m, "j", "j")
	selected, _ := m.Selected()
	assert.Equal(t, b.Tasks[2].ID, selected.ID)

	m = press(t, m, "/", "esc")
	assert.Equal(t, NormalMode, m.Mode())
	assert.Len(t, m.Visible(), 3, "esc clears the filter")
}

func TestModel_Toggle(t *testing.T) {
	backend, m, b := loadedModel(t)
	id := b.Tasks[0].ID

	_, cmd := send(t, m, key("space"))
	m = run(t, m, cmd)

	assert.Empty(t, m.Notices())
	assert.Equal(t, models.StatusDone, m.Visible()[0].Status)
	stored, ok := backend.Task(id)
	require.True(t, ok)
	assert.Equal(t, models.StatusDone, stored.Status)
}

func TestModel_ToggleFailure(t *testing.T) {
	backend, m, b := loadedModel(t)
	backend.Fail("/task/updateTaskStatus/:id", 500, "boom")

	_, cmd := send(t, m, key("space"))
	m = run(t, m, cmd)

	require.Len(t, m.Notices(), 1)
	assert.Equal(t, state.LevelError, m.Notices()[0].Level)
	assert.Contains(t, m.Notices()[0].Message, "Failed to update task status")
	assert.Equal(t, b.Tasks[0].Status, m.Visible()[0].Status, "status rolled back")

	m = press(t, m, "j")
	assert.Empty(t, m.Notices(), "a key press clears notices")
}

func TestModel_Delete(t *testing.T) {
	backend, m, b := loadedModel(t)
	id := b.Tasks[0].ID

	m = press(t, m, "d")
	require.Equal(t, DeleteConfirmMode, m.Mode())
	assert.Contains(t, m.View().Content, "Delete task #")

	m = press(t, m, "n")
	assert.Equal(t, NormalMode, m.Mode())
	assert.Len(t, m.Visible(), 3)

	m = press(t, m, "d")
	m, cmd := send(t, m, key("y"))
	m = run(t, m, cmd)

	assert.Len(t, m.Visible(), 2)
	_, ok := backend.Task(id)
	assert.False(t, ok)
}

func TestModel_MutationNotices(t *testing.T) {
	_, m, _ := loadedModel(t)

	m, _ = send(t, m, MutationDoneMsg{Op: "toggle", Err: mutation.ErrInFlight})
	require.Len(t, m.Notices(), 1)
	assert.Equal(t, state.LevelWarning, m.Notices()[0].Level)

	for range maxNotices + 2 {
		m, _ = send(t, m, MutationDoneMsg{Op: "refresh", Err: assert.AnError})
	}
	assert.Len(t, m.Notices(), maxNotices)
	assert.True(t, strings.HasPrefix(m.Notices()[0].Message, "Could not refresh"))
}

func TestModel_Advice(t *testing.T) {
	_, m, b := loadedModel(t)

	m, _ = send(t, m, AdviceMsg{TaskID: b.Tasks[0].ID, Response: models.TaskAdviceResponse{Error: "service down"}})
	assert.Equal(t, AdviceMode, m.Mode())
	assert.Contains(t, m.View().Content, "down")

	m = press(t, m, "enter")
	assert.Equal(t, NormalMode, m.Mode())
}

func TestModel_Quit(t *testing.T) {
	_, m, _ := loadedModel(t)

	_, cmd := send(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	ctx, cancel := context.WithCancel(context.Background())
	m.ctx = ctx
	cancel()
	_, cmd = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

package tui

import (
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// BoardLoadedMsg carries the result of fetching the board
type BoardLoadedMsg struct {
	Board models.Board
	Err   error
}

// TasksChangedMsg is sent whenever the task container changes
type TasksChangedMsg struct{}

// MutationDoneMsg reports the end of a toggle, delete or refresh
type MutationDoneMsg struct {
	Op  string
	Err error
}

// AdviceMsg carries the advice for one task
type AdviceMsg struct {
	TaskID   types.TaskID
	Response models.TaskAdviceResponse
}

var errNoTasks = errors.New("board not loaded")

func (m Model) loadBoard() tea.Cmd {
	svc := m.board
	ctx := m.ctx
	return func() tea.Msg {
		if err := svc.Load(ctx); err != nil {
			return BoardLoadedMsg{Err: err}
		}
		return BoardLoadedMsg{Board: svc.Board()}
	}
}

// waitForChange blocks until the container signals, then reports it.
// A closed channel ends the subscription.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return TasksChangedMsg{}
	}
}

func (m Model) toggle(id types.TaskID) tea.Cmd {
	svc, ctx := m.tasks, m.ctx
	return func() tea.Msg {
		if svc == nil {
			return MutationDoneMsg{Op: "toggle", Err: errNoTasks}
		}
		return MutationDoneMsg{Op: "toggle", Err: svc.ToggleStatus(ctx, id)}
	}
}

func (m Model) remove(id types.TaskID) tea.Cmd {
	svc, ctx := m.tasks, m.ctx
	return func() tea.Msg {
		if svc == nil {
			return MutationDoneMsg{Op: "delete", Err: errNoTasks}
		}
		return MutationDoneMsg{Op: "delete", Err: svc.Delete(ctx, id)}
	}
}

func (m Model) refresh() tea.Cmd {
	svc, ctx := m.tasks, m.ctx
	return func() tea.Msg {
		if svc == nil {
			return MutationDoneMsg{Op: "refresh", Err: errNoTasks}
		}
		return MutationDoneMsg{Op: "refresh", Err: svc.Load(ctx)}
	}
}

func (m Model) fetchAdvice(t models.Task) tea.Cmd {
	a, ctx := m.app, m.ctx
	b := m.board.Board()
	return func() tea.Msg {
		var clientID types.ClientID
		if c, err := a.CurrentClient(); err == nil {
			clientID = c.ID
		}
		req := models.NewAdviceRequest(t, b, clientID)
		return AdviceMsg{TaskID: t.ID, Response: a.Advice.GetTaskAdvice(ctx, req)}
	}
}

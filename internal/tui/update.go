package tui

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/taskdeck/internal/cli/styles"
	"github.com/thenoetrevino/taskdeck/internal/services/mutation"
	"github.com/thenoetrevino/taskdeck/internal/state"
	"github.com/thenoetrevino/taskdeck/internal/tui/components"
)

// Init starts loading the board
func (m Model) Init() tea.Cmd {
	return m.loadBoard()
}

// Update is the main update dispatcher
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	select {
	case <-m.ctx.Done():
		return m, tea.Quit
	default:
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case BoardLoadedMsg:
		return m.handleBoardLoaded(msg)

	case TasksChangedMsg:
		m.clampCursor()
		return m, waitForChange(m.changes)

	case MutationDoneMsg:
		m.handleMutationDone(msg)
		return m, nil

	case AdviceMsg:
		m.adviceLoading = false
		m.advice = components.RenderMarkdown(msg.Response.Markdown(), m.contentWidth())
		m.mode = AdviceMode
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.mode == FilterMode {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleBoardLoaded(msg BoardLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.loadErr = msg.Err
		m.mode = NormalMode
		return m, nil
	}
	m.loadErr = nil
	m.tasks = m.app.Tasks(m.boardID, msg.Board.Tasks)
	m.changes = m.tasks.Subscribe()
	m.mode = NormalMode
	m.clampCursor()
	return m, waitForChange(m.changes)
}

func (m *Model) handleMutationDone(msg MutationDoneMsg) {
	switch {
	case errors.Is(msg.Err, mutation.ErrInFlight):
		m.notify(state.LevelWarning, "Still saving the previous change to this task")
	case msg.Err != nil:
		m.notify(state.LevelError, fmt.Sprintf("Could not %s: %v", msg.Op, msg.Err))
	default:
		m.pullNotifications()
	}
	m.clampCursor()
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case LoadingMode:
		if k == m.keys.Quit {
			return m, tea.Quit
		}
		return m, nil
	case FilterMode:
		return m.handleFilterKey(msg)
	case DeleteConfirmMode:
		return m.handleDeleteConfirm(k)
	case AdviceMode, HelpMode:
		if k == "esc" || k == "enter" || k == m.keys.Quit || k == m.keys.ShowHelp {
			m.mode = NormalMode
			m.advice = ""
		}
		return m, nil
	}
	return m.handleNormalKey(k)
}

func (m Model) handleNormalKey(k string) (tea.Model, tea.Cmd) {
	m.notices = nil

	switch k {
	case m.keys.Quit:
		if m.changes != nil {
			m.tasks.Unsubscribe(m.changes)
			m.changes = nil
		}
		return m, tea.Quit
	case m.keys.NextTask, "down":
		m.cursor++
		m.clampCursor()
	case m.keys.PrevTask, "up":
		m.cursor--
		m.clampCursor()
	case m.keys.ShowHelp:
		m.mode = HelpMode
	case m.keys.Refresh:
		if m.tasks == nil {
			m.mode = LoadingMode
			return m, m.loadBoard()
		}
		return m, m.refresh()
	case m.keys.Filter:
		if m.tasks == nil {
			return m, nil
		}
		m.mode = FilterMode
		cmd := m.filter.Focus()
		return m, cmd
	case m.keys.ToggleStatus:
		if t, ok := m.Selected(); ok {
			return m, m.toggle(t.ID)
		}
	case m.keys.DeleteTask:
		if t, ok := m.Selected(); ok {
			m.pendingDelete = t.ID
			m.mode = DeleteConfirmMode
		}
	case m.keys.AskAdvice:
		if t, ok := m.Selected(); ok && !m.adviceLoading {
			m.adviceLoading = true
			return m, m.fetchAdvice(t)
		}
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filter.SetValue("")
		m.filter.Blur()
		m.mode = NormalMode
		m.clampCursor()
		return m, nil
	case "enter":
		m.filter.Blur()
		m.mode = NormalMode
		m.clampCursor()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.cursor = 0
	return m, cmd
}

func (m Model) handleDeleteConfirm(k string) (tea.Model, tea.Cmd) {
	id := m.pendingDelete
	m.pendingDelete = 0
	m.mode = NormalMode
	if k == "y" || k == "Y" {
		return m, m.remove(id)
	}
	return m, nil
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return styles.CardWidth
	}
	return max(20, m.width-4)
}

// Package tui is the interactive board view.
package tui

import (
	"context"

	"charm.land/bubbles/v2/textinput"

	"github.com/thenoetrevino/taskdeck/internal/app"
	"github.com/thenoetrevino/taskdeck/internal/config"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/board"
	taskservice "github.com/thenoetrevino/taskdeck/internal/services/task"
	"github.com/thenoetrevino/taskdeck/internal/state"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// Mode is what the board view is currently doing with key presses
type Mode int

const (
	LoadingMode Mode = iota
	NormalMode
	FilterMode
	DeleteConfirmMode
	AdviceMode
	HelpMode
)

// maxNotices bounds how many notifications stay on screen
const maxNotices = 3

// Model represents the board view
type Model struct {
	ctx     context.Context
	app     *app.App
	boardID types.BoardID

	board   board.Service
	tasks   taskservice.Service
	changes <-chan struct{}

	keys   config.KeyMappings
	colors config.ColorScheme

	mode          Mode
	cursor        int
	filter        textinput.Model
	pendingDelete types.TaskID
	advice        string
	adviceLoading bool
	notices       []state.Notification
	loadErr       error

	width  int
	height int
}

// NewModel creates the view for one board. Nothing is fetched until Init.
func NewModel(ctx context.Context, a *app.App, id types.BoardID) Model {
	ti := textinput.New()
	ti.Placeholder = "filter by description"
	ti.Prompt = "/ "

	return Model{
		ctx:     ctx,
		app:     a,
		boardID: id,
		board:   a.Board(id),
		keys:    a.Config.KeyMappings,
		colors:  a.Config.ColorScheme,
		mode:    LoadingMode,
		filter:  ti,
	}
}

// Mode returns the current mode
func (m Model) Mode() Mode { return m.mode }

// Notices returns the notifications currently on screen
func (m Model) Notices() []state.Notification { return m.notices }

// Visible returns the tasks that pass the current filter
func (m Model) Visible() []models.Task {
	if m.tasks == nil {
		return nil
	}
	return m.tasks.Filter(m.filter.Value())
}

// Selected returns the task under the cursor
func (m Model) Selected() (models.Task, bool) {
	visible := m.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return models.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// pullNotifications moves queued notifications onto the screen, keeping
// only the newest few.
func (m *Model) pullNotifications() {
	m.notices = append(m.notices, m.app.Notifications.Drain()...)
	if len(m.notices) > maxNotices {
		m.notices = m.notices[len(m.notices)-maxNotices:]
	}
}

func (m *Model) notify(level state.NotificationLevel, msg string) {
	m.app.Notifications.Add(level, msg)
	m.pullNotifications()
}

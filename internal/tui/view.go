package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/taskdeck/internal/tui/components"
	"github.com/thenoetrevino/taskdeck/internal/tui/notifications"
)

// View renders the current state of the board view
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.Content = m.render()
	return view
}

func (m Model) render() string {
	c := m.colors
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Title))
	subtle := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Subtle))

	if m.mode == LoadingMode {
		return subtle.Render(fmt.Sprintf("Loading board %d...", m.boardID))
	}
	if m.loadErr != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			notifications.Render(errorNotice(m.loadErr), c),
			subtle.Render(fmt.Sprintf("press %s to retry, %s to quit", m.keys.Refresh, m.keys.Quit)),
		)
	}

	var sections []string
	b := m.board.Board()
	sections = append(sections,
		title.Render(b.Name),
		components.RenderProgress(m.tasks.Statistics(), c),
		"",
	)

	switch m.mode {
	case HelpMode:
		sections = append(sections, m.renderHelp())
	case AdviceMode:
		sections = append(sections, m.advice)
	default:
		sections = append(sections, m.renderTasks())
		if m.mode == FilterMode || m.filter.Value() != "" {
			sections = append(sections, "", m.filter.View())
		}
		if m.mode == DeleteConfirmMode {
			sections = append(sections, "", lipgloss.NewStyle().
				Foreground(lipgloss.Color(c.Delete)).Bold(true).
				Render(fmt.Sprintf("Delete task #%d? (y/n)", m.pendingDelete)))
		}
	}

	if m.adviceLoading {
		sections = append(sections, "", subtle.Render("Asking the AI service..."))
	}
	for _, n := range m.notices {
		sections = append(sections, notifications.Render(n, c))
	}

	sections = append(sections, "", components.RenderStatusBar(components.StatusBarProps{
		Width: m.contentWidth(),
		Left:  "taskdeck",
		Right: fmt.Sprintf("press %s for help", m.keys.ShowHelp),
		Color: c.Subtle,
	}))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.BoardBorder)).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderTasks() string {
	visible := m.Visible()
	if len(visible) == 0 {
		if m.filter.Value() != "" {
			return "No tasks match the filter"
		}
		return "No tasks yet"
	}
	rows := make([]string, len(visible))
	for i, t := range visible {
		rows[i] = components.RenderTaskRow(components.TaskRowProps{
			Task:     t,
			Selected: i == m.cursor,
			Width:    m.contentWidth(),
			Colors:   m.colors,
		})
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderHelp() string {
	k := m.keys
	lines := [][2]string{
		{k.NextTask + " / " + k.PrevTask, "move"},
		{k.ToggleStatus, "toggle done"},
		{k.DeleteTask, "delete task"},
		{k.AskAdvice, "ask for AI advice"},
		{k.Filter, "filter by description"},
		{k.Refresh, "reload tasks"},
		{k.ShowHelp, "close help"},
		{k.Quit, "quit"},
	}
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.colors.Accent)).Width(12)
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(keyStyle.Render(l[0]) + " " + l[1] + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

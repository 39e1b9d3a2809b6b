// Package components renders the pieces of the board view.
package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/taskdeck/internal/config"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

// TaskRowProps describes one line of the task list
type TaskRowProps struct {
	Task     models.Task
	Selected bool
	Width    int
	Colors   config.ColorScheme
}

func statusColor(c config.ColorScheme, s models.TaskStatus) string {
	switch s {
	case models.StatusDone:
		return c.Done
	case models.StatusOverdue:
		return c.Overdue
	}
	return c.NotDone
}

func statusMark(s models.TaskStatus) string {
	switch s {
	case models.StatusDone:
		return "[x]"
	case models.StatusOverdue:
		return "[!]"
	}
	return "[ ]"
}

// RenderTaskRow renders a task as a checkbox line, highlighted when selected
func RenderTaskRow(props TaskRowProps) string {
	c := props.Colors
	mark := lipgloss.NewStyle().
		Foreground(lipgloss.Color(statusColor(c, props.Task.Status))).
		Render(statusMark(props.Task.Status))

	text := props.Task.Name
	if !props.Task.DueDate.IsZero() {
		text += lipgloss.NewStyle().Foreground(lipgloss.Color(c.Subtle)).
			Render(fmt.Sprintf("  due %s", props.Task.DueDate))
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Normal)).Padding(0, 1)
	if props.Width > 0 {
		style = style.Width(props.Width)
	}
	if props.Selected {
		style = style.Bold(true).Background(lipgloss.Color(c.SelectedBg))
	}
	return style.Render(mark + " " + text)
}

// RenderProgress renders "done/total (pct%)" with a small bar
func RenderProgress(stats models.BoardStatistics, c config.ColorScheme) string {
	const barWidth = 20
	filled := stats.CompletionPercentage * barWidth / 100
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Done)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(c.Subtle)).Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %d/%d (%d%%)", bar, stats.CompletedTasks, stats.TotalTasks, stats.CompletionPercentage)
}

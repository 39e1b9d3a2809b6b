// Package notifications renders queued notifications as banners.
package notifications

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/taskdeck/internal/config"
	"github.com/thenoetrevino/taskdeck/internal/state"
)

type style struct {
	icon       string
	title      string
	foreground string
	background string
}

func styleFor(level state.NotificationLevel, c config.ColorScheme) style {
	switch level {
	case state.LevelWarning:
		return style{icon: "⚠", title: "Warning", foreground: c.WarningFg, background: c.WarningBg}
	case state.LevelError:
		return style{icon: "✕", title: "Error", foreground: c.ErrorFg, background: c.ErrorBg}
	default:
		return style{icon: "🔔", title: "Info", foreground: c.InfoFg, background: c.InfoBg}
	}
}

// Render renders a notification banner based on its level
func Render(n state.Notification, c config.ColorScheme) string {
	s := styleFor(n.Level, c)

	headerText := s.icon + " " + s.title
	maxWidth := max(lipgloss.Width(headerText), lipgloss.Width(n.Message))

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.foreground)).
		Bold(true).
		Width(maxWidth).
		Render(headerText)

	messageContent := lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.foreground)).
		Width(maxWidth).
		Render(n.Message)

	content := lipgloss.JoinVertical(lipgloss.Left, header, messageContent)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(s.background)).
		Padding(0, 1).
		Render(content)
}

// RenderInline renders a compact one-line notification
func RenderInline(n state.Notification, c config.ColorScheme) string {
	s := styleFor(n.Level, c)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.foreground)).
		Background(lipgloss.Color(s.background)).
		Padding(0, 1).
		Render(s.icon + " " + n.Message)
}

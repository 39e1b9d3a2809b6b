package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/taskdeck/internal/app"
	"github.com/thenoetrevino/taskdeck/internal/state"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

func errorNotice(err error) state.Notification {
	return state.Notification{Level: state.LevelError, Message: err.Error()}
}

// RunBoard shows the board view until the user quits or ctx is done
func RunBoard(ctx context.Context, a *app.App, id types.BoardID) error {
	if _, err := a.CurrentClient(); err != nil {
		return err
	}
	p := tea.NewProgram(NewModel(ctx, a, id), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running board view: %w", err)
	}
	return nil
}

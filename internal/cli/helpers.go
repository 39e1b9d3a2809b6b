package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/app"
	"github.com/thenoetrevino/taskdeck/internal/config"
	"github.com/thenoetrevino/taskdeck/internal/state"
	"github.com/thenoetrevino/taskdeck/internal/tui/huhforms"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// EnvBoard holds the board set by 'taskdeck use board'
const EnvBoard = "TASKDECK_BOARD"

// AddBoardFlag registers --board on cmd
func AddBoardFlag(cmd *cobra.Command) {
	cmd.Flags().Int("board", 0, "Board ID (uses "+EnvBoard+" env var if not specified)")
}

// GetBoardID returns --board, falling back to TASKDECK_BOARD
func GetBoardID(cmd *cobra.Command) (types.BoardID, error) {
	if id, _ := cmd.Flags().GetInt("board"); id != 0 {
		if id < 0 {
			return 0, fmt.Errorf("%w: --board must be positive", ErrNoBoard)
		}
		return types.BoardID(id), nil
	}
	env := strings.TrimSpace(os.Getenv(EnvBoard))
	if env == "" {
		return 0, ErrNoBoard
	}
	id, err := types.ParseBoardID(env)
	if err != nil || !id.Valid() {
		return 0, fmt.Errorf("%w: invalid %s value %q", ErrNoBoard, EnvBoard, env)
	}
	return id, nil
}

// AddConfirmFlag registers --yes on a destructive command
func AddConfirmFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
}

// Confirm asks before a destructive action unless --yes or --quiet is set
func Confirm(cmd *cobra.Command, colors config.ColorScheme, title string) (bool, error) {
	yes, _ := cmd.Flags().GetBool("yes")
	quiet, _ := cmd.Flags().GetBool("quiet")
	if yes || quiet {
		return true, nil
	}
	var ok bool
	form := huhforms.CreateConfirmForm(title, "This cannot be undone.", &ok).
		WithTheme(huhforms.CreateTheme(colors))
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// ParseIDArg parses the single positional id of a command
func ParseIDArg[T ~int | ~int64](args []string, what string) (T, error) {
	if len(args) == 0 {
		return 0, &CommandError{Code: ExitUsage, Err: fmt.Errorf("%s ID required", what)}
	}
	var n int64
	if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n <= 0 {
		return 0, &CommandError{Code: ExitUsage, Err: fmt.Errorf("invalid %s ID: %s", what, args[0])}
	}
	return T(n), nil
}

// BackgroundFailure drains queued notifications and returns the first
// error-level one. Deletes and toggles report their failures this way.
func BackgroundFailure(a *app.App) error {
	for _, n := range a.Notifications.Drain() {
		if n.Level == state.LevelError {
			return errors.New(n.Message)
		}
	}
	return nil
}

// CloseCLI closes c, logging any failure
func CloseCLI(c *CLI) {
	if err := c.Close(); err != nil {
		slog.Error("Error closing CLI", "error", err)
	}
}

// BoardIDFrom takes the board from the first argument when given, else
// from --board or TASKDECK_BOARD.
func BoardIDFrom(cmd *cobra.Command, args []string) (types.BoardID, error) {
	if len(args) > 0 {
		return ParseIDArg[types.BoardID](args, "board")
	}
	return GetBoardID(cmd)
}

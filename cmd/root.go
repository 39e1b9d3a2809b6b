// Package cmd assembles the taskdeck command tree.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/cli/account"
	"github.com/thenoetrevino/taskdeck/internal/cli/advice"
	"github.com/thenoetrevino/taskdeck/internal/cli/auth"
	"github.com/thenoetrevino/taskdeck/internal/cli/board"
	"github.com/thenoetrevino/taskdeck/internal/cli/dashboard"
	"github.com/thenoetrevino/taskdeck/internal/cli/styles"
	"github.com/thenoetrevino/taskdeck/internal/cli/task"
	"github.com/thenoetrevino/taskdeck/internal/cli/use"
	"github.com/thenoetrevino/taskdeck/internal/config"
	"github.com/thenoetrevino/taskdeck/internal/logging"
)

// NewRootCmd builds the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	var logCloser io.Closer

	rootCmd := &cobra.Command{
		Use:   "taskdeck",
		Short: "taskdeck - dashboards, boards and tasks from the terminal",
		Long: `taskdeck manages dashboards, boards and tasks on a remote task service
and asks an AI service for advice on individual tasks.

Start with 'taskdeck login', then 'taskdeck dashboard list'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			closer, err := logging.Init()
			if err != nil {
				logging.Discard()
			} else {
				logCloser = closer
			}

			cfg, err := config.Load()
			if err != nil {
				slog.Warn("using default colors", "error", err)
				cfg = config.Default()
			}
			styles.Init(cfg.ColorScheme)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
	}

	rootCmd.AddCommand(auth.Commands()...)
	rootCmd.AddCommand(dashboard.DashboardCmd())
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(advice.AdviceCmd())
	rootCmd.AddCommand(account.AccountCmd())
	rootCmd.AddCommand(use.UseCmd())

	return rootCmd
}

// Execute runs the command tree and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	return exitCode(err)
}

// exitCode maps a command error to an exit status. Commands report their
// own failures and return *cli.CommandError; anything else came from cobra's
// argument parsing and is a usage error.
func exitCode(err error) int {
	if err == nil {
		return cli.ExitSuccess
	}
	var exitErr *cli.CommandError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	fmt.Fprintln(os.Stderr, "Run 'taskdeck --help' for usage.")
	return cli.ExitUsage
}

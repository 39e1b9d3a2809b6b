// Package advice holds the 'taskdeck advice' commands.
package advice

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/task"
	"github.com/thenoetrevino/taskdeck/internal/tui/components"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// AdviceCmd returns the advice parent command
func AdviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advice",
		Short: "Ask the AI service about a task",
	}

	cmd.AddCommand(GetCmd())
	cmd.AddCommand(HealthCmd())

	return cmd
}

// GetCmd returns the advice get subcommand
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <task-id>",
		Short: "Get priority and next-step advice for a task",
		Long: `Get priority and next-step advice for a task on a board.

Examples:
  taskdeck advice get 12 --board 4
  taskdeck advice get 12 --json`,
		Args: cobra.ExactArgs(1),
		RunE: runGet,
	}
	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	taskID, err := cli.ParseIDArg[types.TaskID](args, "task")
	if err != nil {
		return formatter.Fail(err)
	}
	boardID, err := cli.GetBoardID(cmd)
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	client, err := cliInstance.App.CurrentClient()
	if err != nil {
		return formatter.Fail(err)
	}

	boardSvc := cliInstance.App.Board(boardID)
	if err := boardSvc.Load(ctx); err != nil {
		return formatter.Fail(err)
	}
	b := boardSvc.Board()
	idx := models.FindTask(b.Tasks, taskID)
	if idx < 0 {
		return formatter.Fail(task.ErrTaskNotFound)
	}

	resp := cliInstance.App.Advice.GetTaskAdvice(ctx, models.NewAdviceRequest(b.Tasks[idx], b, client.ID))

	switch {
	case formatter.JSON:
		if err := formatter.JSONSuccess("advice", resp); err != nil {
			return err
		}
	case formatter.Quiet:
		if resp.Success {
			fmt.Println(resp.Advice.PriorityRecommendation.Level)
		}
	default:
		fmt.Println(components.RenderMarkdown(resp.Markdown(), 0))
	}

	if !resp.Success {
		return &cli.CommandError{Code: cli.ExitError, Err: errors.New(resp.Error)}
	}
	return nil
}

// HealthCmd returns the advice health subcommand
func HealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check whether the AI service is reachable",
		Args:  cobra.NoArgs,
		RunE:  runHealth,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	status := cliInstance.App.Advice.TestConnection(ctx)
	info := cliInstance.App.Advice.ServiceInfo()

	switch {
	case formatter.Quiet:
		fmt.Println(status.Connected)
	case formatter.JSON:
		if err := formatter.JSONSuccess("health", map[string]any{
			"connected":  status.Connected,
			"message":    status.Message,
			"baseUrl":    info.BaseURL,
			"configured": info.Configured,
		}); err != nil {
			return err
		}
	default:
		fmt.Printf("AI service at %s: %s\n", info.BaseURL, status.Message)
	}

	if !status.Connected {
		return &cli.CommandError{Code: cli.ExitError, Err: errors.New(status.Message)}
	}
	return nil
}

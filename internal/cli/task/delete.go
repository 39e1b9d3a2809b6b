package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/models"
	taskservice "github.com/thenoetrevino/taskdeck/internal/services/task"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Long:  "Delete a task by ID (requires confirmation unless --yes or --quiet).",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
	cli.AddBoardFlag(cmd)
	cli.AddConfirmFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	formatter := cli.FormatterFor(cmd)

	id, err := cli.ParseIDArg[types.TaskID](args, "task")
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, svc, err := openBoard(cmd)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	tasks := svc.Tasks()
	idx := models.FindTask(tasks, id)
	if idx < 0 {
		return formatter.Fail(taskservice.ErrTaskNotFound)
	}

	ok, err := cli.Confirm(cmd, cliInstance.App.Config.ColorScheme, fmt.Sprintf("Delete task #%d '%s'?", id, tasks[idx].Name))
	if err != nil {
		return formatter.Fail(err)
	}
	if !ok {
		fmt.Println("Cancelled")
		return nil
	}

	if err := svc.Delete(cmd.Context(), id); err != nil {
		return formatter.Fail(err)
	}
	if err := cli.BackgroundFailure(cliInstance.App); err != nil {
		return formatter.Fail(err)
	}

	switch {
	case formatter.Quiet:
	case formatter.JSON:
		return formatter.JSONSuccess("task_id", id)
	default:
		fmt.Printf("Task %d deleted successfully\n", id)
	}
	return nil
}

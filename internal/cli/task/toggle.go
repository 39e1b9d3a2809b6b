package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/cli/styles"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// ToggleCmd returns the task toggle subcommand
func ToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <task-id>",
		Short: "Flip a task between Done and Not_Done",
		Long:  "Flip a task between Done and Not_Done. Overdue tasks become Done.",
		Args:  cobra.ExactArgs(1),
		RunE:  runToggle,
	}
	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runToggle(cmd *cobra.Command, args []string) error {
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

	if err := svc.ToggleStatus(cmd.Context(), id); err != nil {
		return formatter.Fail(err)
	}
	if err := cli.BackgroundFailure(cliInstance.App); err != nil {
		return formatter.Fail(err)
	}

	tasks := svc.Tasks()
	t := tasks[models.FindTask(tasks, id)]

	switch {
	case formatter.Quiet:
		fmt.Println(t.ID)
	case formatter.JSON:
		return formatter.JSONSuccess("task", t)
	default:
		fmt.Printf("Task %d is now %s\n", t.ID, styles.RenderStatus(t.Status))
	}
	return nil
}

package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/models"
	taskservice "github.com/thenoetrevino/taskdeck/internal/services/task"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Change a task's name, description or status",
		Long: `Change a task's name, description or status. Only the flags given
are sent, and unchanged values are skipped.

Examples:
  taskdeck task update 12 --name "Send final invoice"
  taskdeck task update 12 --status done`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}
	cli.AddBoardFlag(cmd)
	cmd.Flags().String("name", "", "New task name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("status", "", "New status: done, not_done, overdue")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	formatter := cli.FormatterFor(cmd)

	id, err := cli.ParseIDArg[types.TaskID](args, "task")
	if err != nil {
		return formatter.Fail(err)
	}

	req := taskservice.UpdateTaskRequest{TaskID: id}
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		req.Name = &name
	}
	if cmd.Flags().Changed("description") {
		description, _ := cmd.Flags().GetString("description")
		req.Description = &description
	}
	if cmd.Flags().Changed("status") {
		s, _ := cmd.Flags().GetString("status")
		status, err := models.ParseTaskStatus(s)
		if err != nil {
			return formatter.Fail(err)
		}
		req.Status = &status
	}

	cliInstance, svc, err := openBoard(cmd)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	updated, err := svc.Update(cmd.Context(), req)
	if err != nil {
		return formatter.Fail(err)
	}

	switch {
	case formatter.Quiet:
		fmt.Println(updated.ID)
	case formatter.JSON:
		return formatter.JSONSuccess("task", updated)
	default:
		fmt.Printf("Updated task %d: %s (%s)\n", updated.ID, strings.TrimSpace(updated.Name), updated.Status)
	}
	return nil
}

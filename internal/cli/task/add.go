package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/models"
	taskservice "github.com/thenoetrevino/taskdeck/internal/services/task"
	"github.com/thenoetrevino/taskdeck/internal/tui/huhforms"
)

// AddCmd returns the task add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a task to a board",
		Long: `Add a task to a board. Without a name an interactive form is shown.

Examples:
  taskdeck task add --board 4 "Send invoice" --due 2026-11-01
  taskdeck task add "Write report" --description "Q3 numbers" --status overdue
  TASK_ID=$(taskdeck task add "Call bank" --quiet)`,
		RunE: runAdd,
	}
	cli.AddBoardFlag(cmd)
	cmd.Flags().String("description", "", "Task description")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().String("status", "", "Initial status: done, not_done, overdue (default not_done)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	formatter := cli.FormatterFor(cmd)

	req := taskservice.CreateTaskRequest{Name: strings.Join(args, " ")}
	req.Description, _ = cmd.Flags().GetString("description")
	due, _ := cmd.Flags().GetString("due")

	if req.Name == "" {
		if formatter.JSON || formatter.Quiet {
			return formatter.Fail(&cli.CommandError{Code: cli.ExitUsage, Err: fmt.Errorf("task name required")})
		}
		confirmed, err := promptTask(cmd, &req.Name, &req.Description, &due)
		if err != nil {
			return formatter.Fail(err)
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
	}

	dueDate, err := models.ParseDate(strings.TrimSpace(due))
	if err != nil {
		return formatter.Fail(&cli.CommandError{Code: cli.ExitValidation, Err: err})
	}
	req.DueDate = dueDate
	if s, _ := cmd.Flags().GetString("status"); s != "" {
		status, err := models.ParseTaskStatus(s)
		if err != nil {
			return formatter.Fail(err)
		}
		req.Status = status
	}

	cliInstance, svc, err := openBoard(cmd)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	created, err := svc.Create(cmd.Context(), req)
	if err != nil {
		return formatter.Fail(err)
	}

	switch {
	case formatter.Quiet:
		fmt.Println(created.ID)
	case formatter.JSON:
		return formatter.JSONSuccess("task", created)
	default:
		fmt.Printf("Created task %d: %s\n", created.ID, created.Name)
	}
	return nil
}

func promptTask(cmd *cobra.Command, name, description, due *string) (bool, error) {
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return false, err
	}
	defer cli.CloseCLI(cliInstance)

	confirm := true
	form := huhforms.CreateTaskForm(name, description, due, &confirm, 4).
		WithTheme(huhforms.CreateTheme(cliInstance.App.Config.ColorScheme))
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirm, nil
}

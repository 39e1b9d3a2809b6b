package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/cli/styles"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks on a board",
		Long: `List the tasks on a board in ascending id order.

Examples:
  taskdeck task list --board 4
  taskdeck task list --filter "invoice"
  taskdeck task list --json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
	cli.AddBoardFlag(cmd)
	cmd.Flags().String("filter", "", "Only show tasks whose description contains this text")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	formatter := cli.FormatterFor(cmd)

	cliInstance, svc, err := openBoard(cmd)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	filter, _ := cmd.Flags().GetString("filter")
	tasks := svc.Filter(filter)

	if formatter.Quiet {
		for _, t := range tasks {
			fmt.Println(t.ID)
		}
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess("tasks", tasks)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}
	fmt.Printf("Found %d tasks:\n", len(tasks))
	for _, t := range tasks {
		fmt.Println(formatTaskLine(t))
	}
	return nil
}

func formatTaskLine(t models.Task) string {
	line := fmt.Sprintf("  %s [%d] %s",
		styles.ColoredText(styles.StatusMark(t.Status), styles.StatusColor(t.Status)), t.ID, t.Name)
	if !t.DueDate.IsZero() {
		line += styles.SubtitleStyle.Render(" (due " + t.DueDate.String() + ")")
	}
	return line
}

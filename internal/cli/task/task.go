// Package task holds the 'taskdeck task' commands.
package task

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	taskservice "github.com/thenoetrevino/taskdeck/internal/services/task"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks on a board",
		Long: `Manage tasks on a board.

The board comes from --board or the TASKDECK_BOARD environment variable
(see 'taskdeck use board').`,
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(AddCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(ToggleCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(StatsCmd())

	return cmd
}

// openBoard builds a CLI and a loaded task coordinator for the board the
// command targets. The caller closes the returned CLI.
func openBoard(cmd *cobra.Command) (*cli.CLI, taskservice.Service, error) {
	boardID, err := cli.GetBoardID(cmd)
	if err != nil {
		return nil, nil, err
	}
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	svc := cliInstance.App.Tasks(boardID, nil)
	if err := svc.Load(cmd.Context()); err != nil {
		cli.CloseCLI(cliInstance)
		return nil, nil, err
	}
	return cliInstance, svc, nil
}

package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/cli"
)

// StatsCmd returns the task stats subcommand
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics for a board",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	formatter := cli.FormatterFor(cmd)

	cliInstance, svc, err := openBoard(cmd)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	stats := svc.Statistics()
	switch {
	case formatter.Quiet:
		fmt.Println(stats.CompletionPercentage)
	case formatter.JSON:
		return formatter.JSONSuccess("statistics", stats)
	default:
		fmt.Printf("%d of %d tasks done (%d%%)\n", stats.CompletedTasks, stats.TotalTasks, stats.CompletionPercentage)
	}
	return nil
}

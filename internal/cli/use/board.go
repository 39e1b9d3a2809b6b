package use

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// BoardCmd returns the use board subcommand
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board [board-id]",
		Short: "Set board context for current shell session",
		Long: `Set the current board context using environment variables.
This command outputs shell commands that should be evaluated:

  eval $(taskdeck use board 4)          # Use board 4
  eval $(taskdeck use board --clear)    # Clear board context
  taskdeck use board --show             # Show current board

The TASKDECK_BOARD environment variable will be set in your current shell
session only. The --board flag on other commands takes precedence over
this environment variable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseBoard,
	}

	cmd.Flags().Bool("clear", false, "Clear the current board context")
	cmd.Flags().Bool("show", false, "Show the current board context")
	cmd.Flags().Bool("dry-run", false, "Show what would be exported without outputting shell commands")

	return cmd
}

func runUseBoard(cmd *cobra.Command, args []string) error {
	formatter := &cli.OutputFormatter{}

	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if showFlag {
		return showCurrentBoard(cmd)
	}

	if clearFlag {
		if dryRun {
			fmt.Fprintf(os.Stderr, "Would clear %s\n", cli.EnvBoard)
			return nil
		}
		fmt.Printf("unset %s\n", cli.EnvBoard)
		fmt.Fprintf(os.Stderr, "Cleared board context\n")
		return nil
	}

	boardID, err := cli.ParseIDArg[types.BoardID](args, "board")
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	// Validate board exists
	board, err := cliInstance.App.API.Board(cmd.Context(), boardID)
	if err != nil {
		return formatter.Fail(err)
	}

	if dryRun {
		fmt.Fprintf(os.Stderr, "Would set %s=%d (%s)\n", cli.EnvBoard, boardID, board.Name)
		return nil
	}

	fmt.Printf("export %s=%d\n", cli.EnvBoard, boardID)
	fmt.Fprintf(os.Stderr, "Now using board %d: %s\n", boardID, board.Name)
	return nil
}

func showCurrentBoard(cmd *cobra.Command) error {
	current := os.Getenv(cli.EnvBoard)
	if current == "" {
		fmt.Println("No board context set")
		fmt.Println("Use 'eval $(taskdeck use board <board-id>)' to set one")
		return nil
	}

	boardID, err := types.ParseBoardID(current)
	if err != nil || !boardID.Valid() {
		fmt.Printf("Invalid board context: %s\n", current)
		return nil
	}

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return (&cli.OutputFormatter{}).Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	board, err := cliInstance.App.API.Board(cmd.Context(), boardID)
	if err != nil {
		fmt.Printf("Current board: %d (not found)\n", boardID)
		return nil
	}

	fmt.Printf("Current board: %d - %s\n", boardID, board.Name)
	return nil
}

// Package board holds the 'taskdeck board' commands.
package board

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/cli/styles"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/tui"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// BoardCmd returns the board parent command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(RenameCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(OpenCmd())

	return cmd
}

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [board-id]",
		Short: "Show a board with its tasks and progress",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}
	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	id, err := cli.BoardIDFrom(cmd, args)
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	svc := cliInstance.App.Board(id)
	if err := svc.Load(ctx); err != nil {
		return formatter.Fail(err)
	}
	b := svc.Board()
	stats := models.ComputeStatistics(b.Tasks)

	if formatter.Quiet {
		for _, t := range b.Tasks {
			fmt.Println(t.ID)
		}
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess("board", map[string]any{
			"boardId":    b.ID,
			"name":       b.Name,
			"task_list":  b.Tasks,
			"statistics": stats,
		})
	}

	fmt.Println(styles.TitleStyle.Render(fmt.Sprintf("Board %d: %s", b.ID, b.Name)))
	fmt.Println(styles.SubtitleStyle.Render(fmt.Sprintf("%d/%d done (%d%%)",
		stats.CompletedTasks, stats.TotalTasks, stats.CompletionPercentage)))
	fmt.Println()
	if len(b.Tasks) == 0 {
		fmt.Println("No tasks yet")
		return nil
	}
	for _, t := range b.Tasks {
		fmt.Printf("  %s [%d] %s\n", styles.ColoredText(styles.StatusMark(t.Status), styles.StatusColor(t.Status)), t.ID, t.Name)
	}
	return nil
}

// CreateCmd returns the board create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a board on a dashboard",
		Long: `Create a board on a dashboard.

Examples:
  taskdeck board create --dashboard 2 "Sprint 12"
  BOARD_ID=$(taskdeck board create --dashboard 2 "Backlog" --quiet)`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCreate,
	}
	cmd.Flags().Int("dashboard", 0, "Dashboard ID (required)")
	_ = cmd.MarkFlagRequired("dashboard")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	dashID, _ := cmd.Flags().GetInt("dashboard")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	b, err := cliInstance.App.Boards(types.DashboardID(dashID)).Create(ctx, strings.Join(args, " "))
	if err != nil {
		return formatter.Fail(err)
	}

	switch {
	case formatter.Quiet:
		fmt.Println(b.ID)
	case formatter.JSON:
		return formatter.JSONSuccess("board", b)
	default:
		fmt.Printf("Created board %d: %s\n", b.ID, b.Name)
	}
	return nil
}

// RenameCmd returns the board rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <board-id> <new-name>",
		Short: "Rename a board",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runRename,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	id, err := cli.ParseIDArg[types.BoardID](args, "board")
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	svc := cliInstance.App.Board(id)
	if err := svc.Load(ctx); err != nil {
		return formatter.Fail(err)
	}
	if err := svc.Rename(ctx, strings.Join(args[1:], " ")); err != nil {
		return formatter.Fail(err)
	}
	if err := cli.BackgroundFailure(cliInstance.App); err != nil {
		return formatter.Fail(err)
	}

	b := svc.Board()
	switch {
	case formatter.Quiet:
		fmt.Println(b.ID)
	case formatter.JSON:
		return formatter.JSONSuccess("board", map[string]any{"boardId": b.ID, "name": b.Name})
	default:
		fmt.Printf("Board %d renamed to %s\n", b.ID, b.Name)
	}
	return nil
}

// DeleteCmd returns the board delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <board-id>",
		Short: "Delete a board and its tasks",
		Long:  "Delete a board by ID (requires confirmation unless --yes or --quiet).",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
	cmd.Flags().Int("dashboard", 0, "Dashboard ID, when the backend does not report it")
	cli.AddConfirmFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	id, err := cli.ParseIDArg[types.BoardID](args, "board")
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	target, err := cliInstance.App.API.Board(ctx, id)
	if err != nil {
		return formatter.Fail(err)
	}
	dashID := target.DashboardID
	if flagID, _ := cmd.Flags().GetInt("dashboard"); flagID > 0 {
		dashID = types.DashboardID(flagID)
	}
	if !dashID.Valid() {
		return formatter.Fail(&cli.CommandError{Code: cli.ExitUsage, Err: fmt.Errorf("board %d has no dashboard; pass --dashboard", id)})
	}

	ok, err := cli.Confirm(cmd, cliInstance.App.Config.ColorScheme, fmt.Sprintf("Delete board #%d '%s'?", id, target.Name))
	if err != nil {
		return formatter.Fail(err)
	}
	if !ok {
		fmt.Println("Cancelled")
		return nil
	}

	list := cliInstance.App.Boards(dashID)
	if err := list.Load(ctx); err != nil {
		return formatter.Fail(err)
	}
	if err := list.Delete(ctx, id); err != nil {
		return formatter.Fail(err)
	}
	if err := cli.BackgroundFailure(cliInstance.App); err != nil {
		return formatter.Fail(err)
	}

	switch {
	case formatter.Quiet:
	case formatter.JSON:
		return formatter.JSONSuccess("board_id", id)
	default:
		fmt.Printf("Board %d deleted successfully\n", id)
	}
	return nil
}

// OpenCmd returns the board open subcommand
func OpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open [board-id]",
		Short: "Open a board in the interactive view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runOpen,
	}
	cli.AddBoardFlag(cmd)
	return cmd
}

func runOpen(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := &cli.OutputFormatter{}

	id, err := cli.BoardIDFrom(cmd, args)
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	if err := tui.RunBoard(ctx, cliInstance.App, id); err != nil {
		return formatter.Fail(err)
	}
	return nil
}

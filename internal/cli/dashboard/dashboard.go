// Package dashboard holds the 'taskdeck dashboard' commands.
package dashboard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/models"
	dashsvc "github.com/thenoetrevino/taskdeck/internal/services/dashboard"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// DashboardCmd returns the dashboard parent command
func DashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Manage dashboards",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// ListCmd returns the dashboard list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your dashboards",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	svc, err := cliInstance.App.Dashboards()
	if err != nil {
		return formatter.Fail(err)
	}
	if err := svc.Load(ctx); err != nil {
		return formatter.Fail(err)
	}
	dashboards := svc.Dashboards()

	if formatter.Quiet {
		for _, d := range dashboards {
			fmt.Println(d.ID)
		}
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess("dashboards", dashboards)
	}

	if len(dashboards) == 0 {
		fmt.Println("No dashboards found")
		return nil
	}
	fmt.Printf("Found %d dashboards:\n\n", len(dashboards))
	for _, d := range dashboards {
		fmt.Printf("  [%d] %s (%s)\n", d.ID, d.Name, plural(len(d.Boards), "board"))
	}
	return nil
}

// ShowCmd returns the dashboard show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <dashboard-id>",
		Short: "Show a dashboard and its boards",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	id, err := cli.ParseIDArg[types.DashboardID](args, "dashboard")
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	svc, err := cliInstance.App.Dashboards()
	if err != nil {
		return formatter.Fail(err)
	}
	d, err := svc.Get(ctx, id)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, b := range d.Boards {
			fmt.Println(b.ID)
		}
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess("dashboard", d)
	}

	fmt.Printf("Dashboard %d: %s\n", d.ID, d.Name)
	printBoards(d.Boards)
	return nil
}

func printBoards(boards []models.Board) {
	if len(boards) == 0 {
		fmt.Println("\nNo boards yet")
		return
	}
	fmt.Println()
	for _, b := range boards {
		stats := models.ComputeStatistics(b.Tasks)
		fmt.Printf("  [%d] %s (%d/%d done)\n", b.ID, b.Name, stats.CompletedTasks, stats.TotalTasks)
	}
}

// CreateCmd returns the dashboard create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a dashboard",
		Long: `Create a dashboard.

Examples:
  taskdeck dashboard create "Home"
  DASH_ID=$(taskdeck dashboard create "Work" --quiet)`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCreate,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	svc, err := cliInstance.App.Dashboards()
	if err != nil {
		return formatter.Fail(err)
	}
	d, err := svc.Create(ctx, strings.Join(args, " "))
	if err != nil {
		return formatter.Fail(err)
	}

	switch {
	case formatter.Quiet:
		fmt.Println(d.ID)
	case formatter.JSON:
		return formatter.JSONSuccess("dashboard", d)
	default:
		fmt.Printf("Created dashboard %d: %s\n", d.ID, d.Name)
	}
	return nil
}

// DeleteCmd returns the dashboard delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <dashboard-id>",
		Short: "Delete a dashboard and its boards",
		Long:  "Delete a dashboard by ID (requires confirmation unless --yes or --quiet).",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
	cli.AddConfirmFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	id, err := cli.ParseIDArg[types.DashboardID](args, "dashboard")
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	svc, err := cliInstance.App.Dashboards()
	if err != nil {
		return formatter.Fail(err)
	}
	if err := svc.Load(ctx); err != nil {
		return formatter.Fail(err)
	}

	idx := slices.IndexFunc(svc.Dashboards(), func(d models.Dashboard) bool { return d.ID == id })
	if idx < 0 {
		return formatter.Fail(dashsvc.ErrDashboardNotFound)
	}
	name := svc.Dashboards()[idx].Name
	ok, err := cli.Confirm(cmd, cliInstance.App.Config.ColorScheme, fmt.Sprintf("Delete dashboard #%d '%s'?", id, name))
	if err != nil {
		return formatter.Fail(err)
	}
	if !ok {
		fmt.Println("Cancelled")
		return nil
	}

	if err := svc.Delete(ctx, id); err != nil {
		return formatter.Fail(err)
	}
	if err := cli.BackgroundFailure(cliInstance.App); err != nil {
		return formatter.Fail(err)
	}

	switch {
	case formatter.Quiet:
	case formatter.JSON:
		return formatter.JSONSuccess("dashboard_id", id)
	default:
		fmt.Printf("Dashboard %d deleted successfully\n", id)
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

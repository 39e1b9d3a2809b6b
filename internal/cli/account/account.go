// Package account holds the 'taskdeck account' commands for editing the
// signed-in client's profile.
package account

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/tui/huhforms"
)

// AccountCmd returns the account parent command
func AccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage your account",
	}

	cmd.AddCommand(SetCmd())
	cmd.AddCommand(PasswordCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// SetCmd returns the account set subcommand
func SetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <name|email|phone> <value>",
		Short: "Change one profile field",
		Long: `Change one profile field. Setting a field to its current value does nothing.

Examples:
  taskdeck account set name "Ann Lee"
  taskdeck account set phone 555-0199 --json`,
		Args: cobra.MinimumNArgs(2),
		RunE: runSet,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	field, err := models.ParseClientField(args[0])
	if err != nil {
		return formatter.Fail(err)
	}
	value := strings.Join(args[1:], " ")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	client, err := cliInstance.App.Profile.UpdateField(ctx, field, value)
	if err != nil {
		return formatter.Fail(err)
	}

	switch {
	case formatter.Quiet:
		fmt.Println(client.ID)
	case formatter.JSON:
		return formatter.JSONSuccess("client", client)
	default:
		fmt.Printf("Updated %s to %s\n", field, client.Get(field))
	}
	return nil
}

// PasswordCmd returns the account password subcommand
func PasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Long: `Change your password. Without flags a form asks for the current
password and the new one twice.`,
		Args: cobra.NoArgs,
		RunE: runPassword,
	}
	cmd.Flags().String("old", "", "Current password")
	cmd.Flags().String("new", "", "New password, at least 8 characters")
	cmd.Flags().String("confirm", "", "New password again")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runPassword(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	oldPassword, _ := cmd.Flags().GetString("old")
	newPassword, _ := cmd.Flags().GetString("new")
	confirm, _ := cmd.Flags().GetString("confirm")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	if _, err := cliInstance.App.CurrentClient(); err != nil {
		return formatter.Fail(err)
	}

	interactive := !cmd.Flags().Changed("new") && !formatter.JSON && !formatter.Quiet
	if interactive {
		form := huhforms.CreatePasswordForm(&oldPassword, &newPassword, &confirm).
			WithTheme(huhforms.CreateTheme(cliInstance.App.Config.ColorScheme))
		if err := form.Run(); err != nil {
			return formatter.Fail(err)
		}
	}

	if err := cliInstance.App.Profile.ChangePassword(ctx, oldPassword, newPassword, confirm); err != nil {
		return formatter.Fail(err)
	}

	switch {
	case formatter.Quiet:
	case formatter.JSON:
		return formatter.JSONSuccess("message", "Password updated successfully")
	default:
		fmt.Println("Password updated successfully")
	}
	return nil
}

// DeleteCmd returns the account delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account and sign out",
		Long:  "Delete your account (requires confirmation unless --yes or --quiet).",
		Args:  cobra.NoArgs,
		RunE:  runDelete,
	}
	cli.AddConfirmFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	client, err := cliInstance.App.CurrentClient()
	if err != nil {
		return formatter.Fail(err)
	}

	ok, err := cli.Confirm(cmd, cliInstance.App.Config.ColorScheme, fmt.Sprintf("Delete the account for %s?", client.Email))
	if err != nil {
		return formatter.Fail(err)
	}
	if !ok {
		fmt.Println("Cancelled")
		return nil
	}

	if err := cliInstance.App.Profile.DeleteAccount(ctx); err != nil {
		return formatter.Fail(err)
	}

	switch {
	case formatter.Quiet:
	case formatter.JSON:
		return formatter.JSONSuccess("client_id", client.ID)
	default:
		fmt.Println("Account deleted. You have been signed out.")
	}
	return nil
}

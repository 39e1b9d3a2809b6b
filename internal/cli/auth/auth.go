// Package auth holds the sign-in commands: login, signup, logout, whoami.
package auth

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskdeck/internal/api"
	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/tui/huhforms"
)

// Commands returns the top-level auth commands
func Commands() []*cobra.Command {
	return []*cobra.Command{LoginCmd(), SignupCmd(), LogoutCmd(), WhoamiCmd()}
}

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Long: `Sign in and remember the session for later commands.

Examples:
  taskdeck login --email ann@example.com
  taskdeck login --email ann@example.com --password "$PW" --json`,
		Args: cobra.NoArgs,
		RunE: runLogin,
	}
	cmd.Flags().String("email", "", "Account email (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().String("password", "", "Password (prompted when omitted)")
	cli.AddOutputFlags(cmd)
	return cmd
}

// promptSecret reads a hidden value unless output is machine-readable
func promptSecret(f *cli.OutputFormatter, c *cli.CLI, title string) (string, error) {
	if f.JSON || f.Quiet {
		return "", nil
	}
	var v string
	err := huhforms.CreateSecretForm(title, &v).
		WithTheme(huhforms.CreateTheme(c.App.Config.ColorScheme)).
		Run()
	return v, err
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		if password, err = promptSecret(formatter, cliInstance, "Password"); err != nil {
			return formatter.Fail(err)
		}
	}

	client, err := cliInstance.App.Profile.Login(ctx, email, password)
	if err != nil {
		return formatter.Fail(err)
	}
	return printClient(formatter, client, "Signed in as")
}

// SignupCmd returns the signup command
func SignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE:  runSignup,
	}
	cmd.Flags().String("name", "", "Display name (required)")
	cmd.Flags().String("email", "", "Account email (required)")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("password", "", "Password, at least 8 characters (prompted when omitted)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runSignup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	var req api.SignUpRequest
	req.Name, _ = cmd.Flags().GetString("name")
	req.Email, _ = cmd.Flags().GetString("email")
	req.PhoneNumber, _ = cmd.Flags().GetString("phone")
	req.Password, _ = cmd.Flags().GetString("password")
	if req.Password == "" {
		if req.Password, err = promptSecret(formatter, cliInstance, "Choose a password"); err != nil {
			return formatter.Fail(err)
		}
	}

	client, err := cliInstance.App.Profile.SignUp(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}
	return printClient(formatter, client, "Signup successful for user")
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		Args:  cobra.NoArgs,
		RunE:  runLogout,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.CloseCLI(cliInstance)

	if err := cliInstance.App.Profile.Logout(ctx); err != nil {
		return formatter.Fail(err)
	}
	switch {
	case formatter.Quiet:
	case formatter.JSON:
		return formatter.JSONSuccess("signed_out", true)
	default:
		fmt.Println("Signed out")
	}
	return nil
}

// WhoamiCmd returns the whoami command
func WhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE:  runWhoami,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runWhoami(cmd *cobra.Command, args []string) error {
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
	return printClient(formatter, client, "Signed in as")
}

func printClient(f *cli.OutputFormatter, c models.Client, prefix string) error {
	switch {
	case f.Quiet:
		fmt.Println(c.ID)
	case f.JSON:
		return f.JSONSuccess("client", c)
	default:
		line := fmt.Sprintf("%s %s <%s>", prefix, c.Name, c.Email)
		if strings.TrimSpace(c.PhoneNumber) != "" {
			line += " " + c.PhoneNumber
		}
		fmt.Println(line)
	}
	return nil
}

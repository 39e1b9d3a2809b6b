package cli

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// AddOutputFlags registers --json and --quiet on cmd
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// FormatterFor reads the output flags of cmd
func FormatterFor(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// JSONSuccess writes {"success": true, key: data}
func (f *OutputFormatter) JSONSuccess(key string, data any) error {
	return sonic.ConfigStd.NewEncoder(os.Stdout).Encode(map[string]any{
		"success": true,
		key:       data,
	})
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		return nil
	}
	if f.JSON {
		return f.JSONSuccess("data", data)
	}
	fmt.Printf("%+v\n", data)
	return nil
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return sonic.ConfigStd.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err in the active output mode and returns it wrapped with
// its exit code.
func (f *OutputFormatter) Fail(err error) error {
	code, label := Classify(err)
	_ = f.ErrorWithSuggestion(label, err.Error(), suggestionFor(label))
	return &CommandError{Code: code, Err: err}
}

func suggestionFor(label string) string {
	switch label {
	case CodeNotSignedIn:
		return "Sign in with: taskdeck login --email <email>"
	case CodeUnauthorized:
		return "Your session may have expired. Sign in again with: taskdeck login"
	case CodeNoBoard:
		return "Pass --board or set one with: eval $(taskdeck use board <board-id>)"
	}
	return ""
}

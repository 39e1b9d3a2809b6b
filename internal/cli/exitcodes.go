package cli

import (
	"errors"

	"github.com/thenoetrevino/taskdeck/internal/api"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/board"
	"github.com/thenoetrevino/taskdeck/internal/services/dashboard"
	"github.com/thenoetrevino/taskdeck/internal/services/mutation"
	"github.com/thenoetrevino/taskdeck/internal/services/profile"
	"github.com/thenoetrevino/taskdeck/internal/services/task"
	"github.com/thenoetrevino/taskdeck/internal/session"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: network errors, backend rejections, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing required flags, no board selected, not signed in.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: task, board or dashboard IDs that don't exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: backend responses that fail validation.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: empty names, invalid status values, mismatched passwords,
	// or any case where input fails validation rules.
	ExitValidation = 5
)

// Error codes reported in JSON output
const (
	CodeError        = "ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeMalformed    = "MALFORMED_RESPONSE"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotSignedIn  = "NOT_SIGNED_IN"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInFlight     = "IN_FLIGHT"
	CodeNoBoard      = "NO_BOARD"
	CodeUsage        = "USAGE_ERROR"
)

// CommandError carries the process exit code for a failed command
type CommandError struct {
	Code int
	Err  error
}

func (e *CommandError) Error() string { return e.Err.Error() }

func (e *CommandError) Unwrap() error { return e.Err }

// ErrNoBoard is returned when neither --board nor TASKDECK_BOARD is set
var ErrNoBoard = errors.New("no board specified")

var validationErrors = []error{
	models.ErrInvalidStatus, models.ErrInvalidField, models.ErrInvalidPriority,
	task.ErrEmptyName, task.ErrInvalidTaskID, task.ErrInvalidBoardID, task.ErrInvalidStatus, task.ErrNothingToUpdate,
	board.ErrEmptyName, board.ErrInvalidBoardID, board.ErrInvalidDashboardID,
	dashboard.ErrEmptyName, dashboard.ErrInvalidClientID, dashboard.ErrInvalidDashboardID,
	profile.ErrEmptyValue, profile.ErrMissingCredentials, profile.ErrMissingName,
	profile.ErrPasswordMismatch, profile.ErrPasswordTooShort, profile.ErrMissingPassword,
}

var notFoundErrors = []error{task.ErrTaskNotFound, board.ErrBoardNotFound, dashboard.ErrDashboardNotFound}

// Classify maps err to an exit code and an error code label
func Classify(err error) (int, string) {
	var exitErr *CommandError
	if errors.As(err, &exitErr) {
		_, label := Classify(exitErr.Err)
		if exitErr.Code == ExitUsage && label == CodeError {
			label = CodeUsage
		}
		return exitErr.Code, label
	}
	switch {
	case err == nil:
		return ExitSuccess, ""
	case errors.Is(err, session.ErrNotSignedIn):
		return ExitUsage, CodeNotSignedIn
	case errors.Is(err, ErrNoBoard):
		return ExitUsage, CodeNoBoard
	case errors.Is(err, mutation.ErrInFlight):
		return ExitError, CodeInFlight
	case api.IsNotFound(err):
		return ExitNotFound, CodeNotFound
	case api.IsUnauthorized(err):
		return ExitError, CodeUnauthorized
	}
	if apiErr, ok := api.AsError(err); ok && apiErr.Kind == api.KindMalformed {
		return ExitDataErr, CodeMalformed
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return ExitNotFound, CodeNotFound
		}
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return ExitValidation, CodeValidation
		}
	}
	return ExitError, CodeError
}

// ExitCode returns the process exit code for err
func ExitCode(err error) int {
	code, _ := Classify(err)
	return code
}

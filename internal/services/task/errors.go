package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyName       = errors.New("task name cannot be empty")
	ErrInvalidTaskID   = errors.New("invalid task ID")
	ErrInvalidBoardID  = errors.New("invalid board ID")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrNothingToUpdate = errors.New("no fields to update")

	// Local state errors
	ErrTaskNotFound = errors.New("task not found")
)

// Messages queued when a background mutation is rolled back
const (
	msgToggleFailed = "Failed to update task status. Please try again."
	msgDeleteFailed = "Failed to delete task. Please try again."
)

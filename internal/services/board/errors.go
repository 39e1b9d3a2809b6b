package board

import "errors"

// Board-related errors
var (
	ErrEmptyName          = errors.New("board name cannot be empty")
	ErrInvalidBoardID     = errors.New("invalid board ID")
	ErrInvalidDashboardID = errors.New("invalid dashboard ID")
	ErrNotLoaded          = errors.New("board has not been loaded")
	ErrBoardNotFound      = errors.New("board not found")
)

const (
	msgRenameFailed = "Failed to update board name. Please try again."
	msgDeleteFailed = "Failed to delete board. The board has been restored."
)

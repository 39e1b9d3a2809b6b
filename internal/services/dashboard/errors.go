package dashboard

import "errors"

// Dashboard-related errors
var (
	ErrEmptyName          = errors.New("dashboard name cannot be empty")
	ErrInvalidClientID    = errors.New("invalid client ID")
	ErrInvalidDashboardID = errors.New("invalid dashboard ID")
	ErrDashboardNotFound  = errors.New("dashboard not found")
)

const msgDeleteFailed = "Failed to delete. The item has been restored."

package models

import "errors"

// Domain-level errors shared by the adapter and the services
var (
	// ErrInvalidStatus indicates a status string outside Done, Not_Done, Overdue
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrInvalidField indicates a profile field other than name, email or phone
	ErrInvalidField = errors.New("invalid field for update")

	// ErrInvalidPriority indicates an advice priority level the client does not know
	ErrInvalidPriority = errors.New("invalid priority level")
)

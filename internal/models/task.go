package models

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/thenoetrevino/taskdeck/internal/types"
)

// TaskStatus is the completion state of a task as the backend reports it
type TaskStatus string

const (
	StatusDone    TaskStatus = "Done"
	StatusNotDone TaskStatus = "Not_Done"
	StatusOverdue TaskStatus = "Overdue"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusDone, StatusNotDone, StatusOverdue:
		return true
	}
	return false
}

// Toggled returns the status a single-click toggle moves to.
// Done goes back to Not_Done; Not_Done and Overdue both become Done.
func (s TaskStatus) Toggled() TaskStatus {
	if s == StatusDone {
		return StatusNotDone
	}
	return StatusDone
}

// ParseTaskStatus accepts the wire spelling and a few friendlier forms
// ("done", "not-done", "todo", "overdue").
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "done":
		return StatusDone, nil
	case "not_done", "not-done", "notdone", "todo":
		return StatusNotDone, nil
	case "overdue":
		return StatusOverdue, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Task is a single unit of work on a board
type Task struct {
	ID           types.TaskID `json:"taskId"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Status       TaskStatus   `json:"status"`
	CreationDate Date         `json:"creationDate"`
	DueDate      Date         `json:"dueDate"`
}

// SortTasksByID orders tasks ascending by identifier, in place.
// Provisional tasks carry clock-derived ids and so sort after confirmed ones.
func SortTasksByID(tasks []Task) {
	slices.SortStableFunc(tasks, compareTaskIDs)
}

// TasksSortedByID reports whether tasks are in ascending id order.
func TasksSortedByID(tasks []Task) bool {
	return slices.IsSortedFunc(tasks, compareTaskIDs)
}

func compareTaskIDs(a, b Task) int {
	return cmp.Compare(a.ID, b.ID)
}

// FindTask returns the index of the task with id, or -1.
func FindTask(tasks []Task, id types.TaskID) int {
	return slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
}

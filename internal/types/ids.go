package types

import "strconv"

// ID type aliases document what each integer represents in the domain model.
// All identifiers are assigned by the backend, except the transient TaskID a
// provisional task carries between optimistic insertion and confirmation.

// ClientID identifies a registered client (user account)
type ClientID int

// DashboardID identifies a dashboard owned by a client
type DashboardID int

// BoardID identifies a board within a dashboard
type BoardID int

// TaskID identifies a task within a board
type TaskID int64

// Valid reports whether the id could have been assigned by the backend.
func (id ClientID) Valid() bool    { return id > 0 }
func (id DashboardID) Valid() bool { return id > 0 }
func (id BoardID) Valid() bool     { return id > 0 }
func (id TaskID) Valid() bool      { return id > 0 }

func (id ClientID) String() string    { return strconv.Itoa(int(id)) }
func (id DashboardID) String() string { return strconv.Itoa(int(id)) }
func (id BoardID) String() string     { return strconv.Itoa(int(id)) }
func (id TaskID) String() string      { return strconv.FormatInt(int64(id), 10) }

// ParseTaskID parses a decimal task identifier as typed on the command line.
func ParseTaskID(s string) (TaskID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return TaskID(n), nil
}

// ParseBoardID parses a decimal board identifier.
func ParseBoardID(s string) (BoardID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return BoardID(n), nil
}

// ParseDashboardID parses a decimal dashboard identifier.
func ParseDashboardID(s string) (DashboardID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return DashboardID(n), nil
}

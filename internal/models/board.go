package models

import (
	"slices"

	"github.com/thenoetrevino/taskdeck/internal/types"
)

// Board groups tasks inside a dashboard
type Board struct {
	ID          types.BoardID     `json:"boardId"`
	Name        string            `json:"name"`
	DashboardID types.DashboardID `json:"dashboardId,omitempty"`
	Tasks       []Task            `json:"task_list"`
}

// Clone returns a deep copy so snapshots never share task slices.
func (b Board) Clone() Board {
	b.Tasks = slices.Clone(b.Tasks)
	return b
}

// Dashboard is the top-level container a client owns
type Dashboard struct {
	ID     types.DashboardID `json:"dashBoardId"`
	Name   string            `json:"name"`
	Client Client            `json:"client"`
	Boards []Board           `json:"board_list"`
}

// Clone returns a deep copy including every board's tasks.
func (d Dashboard) Clone() Dashboard {
	boards := make([]Board, len(d.Boards))
	for i, b := range d.Boards {
		boards[i] = b.Clone()
	}
	d.Boards = boards
	return d
}

// CloneDashboards deep-copies a dashboard list.
func CloneDashboards(in []Dashboard) []Dashboard {
	if in == nil {
		return nil
	}
	out := make([]Dashboard, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}

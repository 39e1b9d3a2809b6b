package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// Boards lists every board visible to the caller.
func (c *Client) Boards(ctx context.Context) ([]models.Board, error) {
	const op = "boards"
	resp, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodGet,
		path:       "/board/getAll",
		defaultMsg: "Failed to fetch boards",
	})
	if err != nil {
		return nil, err
	}
	ws, err := decodeList[boardWire](op, resp)
	if err != nil {
		return nil, err
	}
	return boardModels(ws), nil
}

// Board fetches one board with its tasks.
func (c *Client) Board(ctx context.Context, id types.BoardID) (models.Board, error) {
	const op = "board"
	resp, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodGet,
		path:       "/board/getByBoardId/" + id.String(),
		defaultMsg: "Failed to fetch board",
	})
	if err != nil {
		return models.Board{}, err
	}
	if resp.empty() {
		return models.Board{}, notFoundError(op, "Board not found.")
	}
	var w boardWire
	if err := decode(op, resp, &w); err != nil {
		return models.Board{}, err
	}
	return w.model(), nil
}

// BoardsByDashboard lists the boards of one dashboard.
func (c *Client) BoardsByDashboard(ctx context.Context, dashboardID types.DashboardID) ([]models.Board, error) {
	const op = "boards_by_dashboard"
	resp, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodGet,
		path:       "/board/getByDashboardId/" + dashboardID.String(),
		defaultMsg: "Failed to fetch boards",
	})
	if err != nil {
		return nil, err
	}
	ws, err := decodeList[boardWire](op, resp)
	if err != nil {
		return nil, err
	}
	boards := boardModels(ws)
	for i := range boards {
		if !boards[i].DashboardID.Valid() {
			boards[i].DashboardID = dashboardID
		}
	}
	return boards, nil
}

// CreateBoard creates an empty board in a dashboard.
func (c *Client) CreateBoard(ctx context.Context, name string, dashboardID types.DashboardID) (models.Board, error) {
	const op = "create_board"
	resp, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodPost,
		path:       "/board/addBoard",
		body:       boardBody{Name: name, DashboardID: int(dashboardID), TaskList: []models.Task{}},
		defaultMsg: "Failed to create board",
	})
	if err != nil {
		return models.Board{}, err
	}
	var w boardWire
	if err := decode(op, resp, &w); err != nil {
		return models.Board{}, err
	}
	b := w.model()
	if !b.DashboardID.Valid() {
		b.DashboardID = dashboardID
	}
	return b, nil
}

// RenameBoard changes a board's name.
func (c *Client) RenameBoard(ctx context.Context, id types.BoardID, name string) (models.Board, error) {
	const op = "rename_board"
	resp, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodPatch,
		path:       "/board/updateBoardName/" + id.String(),
		query:      url.Values{"new_name": {name}},
		defaultMsg: "Failed to update board name",
	})
	if err != nil {
		return models.Board{}, err
	}
	var w boardWire
	if err := decode(op, resp, &w); err != nil {
		return models.Board{}, err
	}
	return w.model(), nil
}

// DeleteBoard removes a board by id.
func (c *Client) DeleteBoard(ctx context.Context, id types.BoardID) error {
	_, err := c.do(ctx, request{
		op:         "delete_board",
		method:     http.MethodDelete,
		path:       "/board/removeById/" + id.String(),
		defaultMsg: "Failed to delete board",
	})
	return err
}

// DeleteBoardByName removes a board by its name.
func (c *Client) DeleteBoardByName(ctx context.Context, name string) error {
	_, err := c.do(ctx, request{
		op:         "delete_board_by_name",
		method:     http.MethodDelete,
		path:       "/board/removeByName/" + url.PathEscape(name),
		defaultMsg: "Failed to delete board",
	})
	return err
}

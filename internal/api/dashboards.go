package api

import (
	"context"
	"net/http"

	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// DashboardsByClient lists a client's dashboards. An empty body is an empty list.
func (c *Client) DashboardsByClient(ctx context.Context, clientID types.ClientID) ([]models.Dashboard, error) {
	const op = "dashboards_by_client"
	resp, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodGet,
		path:       "/dashboard/findByClientId/" + clientID.String(),
		defaultMsg: "Failed to fetch dashboards",
	})
	if err != nil {
		return nil, err
	}
	ws, err := decodeList[dashboardWire](op, resp)
	if err != nil {
		return nil, err
	}
	out := make([]models.Dashboard, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.model())
	}
	return out, nil
}

// Dashboard fetches one dashboard with its boards.
func (c *Client) Dashboard(ctx context.Context, id types.DashboardID) (models.Dashboard, error) {
	const op = "dashboard"
	resp, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodGet,
		path:       "/dashboard/findByDashBoardId/" + id.String(),
		defaultMsg: "Failed to fetch dashboard details",
	})
	if err != nil {
		return models.Dashboard{}, err
	}
	if resp.empty() {
		return models.Dashboard{}, notFoundError(op, "Dashboard not found.")
	}
	var w dashboardWire
	if err := decode(op, resp, &w); err != nil {
		return models.Dashboard{}, err
	}
	return w.model(), nil
}

// CreateDashboard creates a dashboard owned by clientID.
func (c *Client) CreateDashboard(ctx context.Context, name string, clientID types.ClientID) (models.Dashboard, error) {
	const op = "create_dashboard"
	resp, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodPost,
		path:       "/dashboard/saveDashboard",
		body:       dashboardBody{DashBoardName: name, ClientID: int(clientID)},
		defaultMsg: "Failed to create dashboard",
	})
	if err != nil {
		return models.Dashboard{}, err
	}
	var w dashboardWire
	if err := decode(op, resp, &w); err != nil {
		return models.Dashboard{}, err
	}
	return w.model(), nil
}

// DeleteDashboard removes a dashboard.
func (c *Client) DeleteDashboard(ctx context.Context, id types.DashboardID) error {
	_, err := c.do(ctx, request{
		op:         "delete_dashboard",
		method:     http.MethodDelete,
		path:       "/dashboard/removeById/" + id.String(),
		defaultMsg: "Failed to delete dashboard",
	})
	return err
}

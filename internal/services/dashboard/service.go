package dashboard

import (
	"context"
	"slices"
	"strings"

	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/mutation"
	"github.com/thenoetrevino/taskdeck/internal/state"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

const entity = "dashboard"

// Backend is the subset of the remote adapter the dashboard coordinator uses
type Backend interface {
	DashboardsByClient(ctx context.Context, clientID types.ClientID) ([]models.Dashboard, error)
	Dashboard(ctx context.Context, id types.DashboardID) (models.Dashboard, error)
	CreateDashboard(ctx context.Context, name string, clientID types.ClientID) (models.Dashboard, error)
	DeleteDashboard(ctx context.Context, id types.DashboardID) error
}

// Service coordinates the signed-in client's dashboards
type Service interface {
	Load(ctx context.Context) error
	Dashboards() []models.Dashboard
	Get(ctx context.Context, id types.DashboardID) (models.Dashboard, error)
	Create(ctx context.Context, name string) (models.Dashboard, error)
	Delete(ctx context.Context, id types.DashboardID) error
	Subscribe() <-chan struct{}
	Unsubscribe(ch <-chan struct{})
}

type service struct {
	backend    Backend
	clientID   types.ClientID
	runner     *mutation.Runner
	dashboards *state.Container[[]models.Dashboard]
}

// NewService creates a dashboard coordinator for clientID
func NewService(backend Backend, clientID types.ClientID, runner *mutation.Runner) Service {
	if runner == nil {
		runner = mutation.NewRunner()
	}
	return &service{
		backend:    backend,
		clientID:   clientID,
		runner:     runner,
		dashboards: state.New([]models.Dashboard{}, models.CloneDashboards),
	}
}

func (s *service) Dashboards() []models.Dashboard { return s.dashboards.Get() }

func (s *service) Subscribe() <-chan struct{} { return s.dashboards.Subscribe() }

func (s *service) Unsubscribe(ch <-chan struct{}) { s.dashboards.Unsubscribe(ch) }

func (s *service) Load(ctx context.Context) error {
	if !s.clientID.Valid() {
		return ErrInvalidClientID
	}
	ds, err := s.backend.DashboardsByClient(ctx, s.clientID)
	if err != nil {
		s.runner.Logger().Error("loading dashboards", "client_id", s.clientID, "error", err)
		return err
	}
	s.dashboards.Set(ds)
	return nil
}

// Get fetches one dashboard with its boards and refreshes the local copy.
func (s *service) Get(ctx context.Context, id types.DashboardID) (models.Dashboard, error) {
	if !id.Valid() {
		return models.Dashboard{}, ErrInvalidDashboardID
	}
	d, err := s.backend.Dashboard(ctx, id)
	if err != nil {
		return models.Dashboard{}, err
	}
	s.dashboards.Update(func(ds []models.Dashboard) []models.Dashboard {
		if i := slices.IndexFunc(ds, func(x models.Dashboard) bool { return x.ID == id }); i >= 0 {
			ds[i] = d
		}
		return ds
	})
	return d, nil
}

// Create appends the dashboard once the backend confirms it. Failures are returned.
func (s *service) Create(ctx context.Context, name string) (models.Dashboard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Dashboard{}, ErrEmptyName
	}
	if !s.clientID.Valid() {
		return models.Dashboard{}, ErrInvalidClientID
	}

	var created models.Dashboard
	key := s.clientID.String() + ":create:" + strings.ToLower(name)
	err := s.runner.Do(ctx, entity, "create", key, func(ctx context.Context) error {
		d, err := s.backend.CreateDashboard(ctx, name, s.clientID)
		if err != nil {
			return err
		}
		if d.Boards == nil {
			d.Boards = []models.Board{}
		}
		created = d
		s.dashboards.Update(func(ds []models.Dashboard) []models.Dashboard {
			return append(ds, d)
		})
		return nil
	})
	return created, err
}

// Delete removes the dashboard immediately. A backend failure restores the
// list and queues a notification.
func (s *service) Delete(ctx context.Context, id types.DashboardID) error {
	if !id.Valid() {
		return ErrInvalidDashboardID
	}
	if !slices.ContainsFunc(s.dashboards.Get(), func(d models.Dashboard) bool { return d.ID == id }) {
		return ErrDashboardNotFound
	}
	return s.runner.DoNotify(ctx, entity, "delete", id.String(), msgDeleteFailed, func(ctx context.Context) error {
		snapshot := s.dashboards.Get()
		idx := slices.IndexFunc(snapshot, func(d models.Dashboard) bool { return d.ID == id })
		if idx < 0 {
			return ErrDashboardNotFound
		}
		removed := snapshot[idx]
		s.dashboards.Update(func(ds []models.Dashboard) []models.Dashboard {
			return slices.DeleteFunc(ds, func(d models.Dashboard) bool { return d.ID == id })
		})

		if err := s.backend.DeleteDashboard(ctx, id); err != nil {
			s.dashboards.Update(func(ds []models.Dashboard) []models.Dashboard {
				return slices.Insert(ds, min(idx, len(ds)), removed)
			})
			return err
		}
		return nil
	})
}

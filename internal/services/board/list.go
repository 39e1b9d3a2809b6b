package board

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/mutation"
	"github.com/thenoetrevino/taskdeck/internal/state"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// taskFetchLimit bounds concurrent task-list requests during Load
const taskFetchLimit = 4

// ListService coordinates the boards of one dashboard
type ListService interface {
	DashboardID() types.DashboardID
	Load(ctx context.Context) error
	Boards() []models.Board
	Create(ctx context.Context, name string) (models.Board, error)
	Delete(ctx context.Context, id types.BoardID) error
	Subscribe() <-chan struct{}
	Unsubscribe(ch <-chan struct{})
}

type listService struct {
	backend     Backend
	dashboardID types.DashboardID
	runner      *mutation.Runner
	boards      *state.Container[[]models.Board]
}

// NewListService creates a coordinator for the boards of dashboardID
func NewListService(backend Backend, dashboardID types.DashboardID, runner *mutation.Runner) ListService {
	if runner == nil {
		runner = mutation.NewRunner()
	}
	return &listService{
		backend:     backend,
		dashboardID: dashboardID,
		runner:      runner,
		boards:      state.New([]models.Board{}, cloneBoards),
	}
}

func cloneBoards(in []models.Board) []models.Board {
	out := make([]models.Board, len(in))
	for i, b := range in {
		out[i] = b.Clone()
	}
	return out
}

func (s *listService) DashboardID() types.DashboardID { return s.dashboardID }

func (s *listService) Boards() []models.Board { return s.boards.Get() }

func (s *listService) Subscribe() <-chan struct{} { return s.boards.Subscribe() }

func (s *listService) Unsubscribe(ch <-chan struct{}) { s.boards.Unsubscribe(ch) }

// Load fetches the dashboard's boards. Boards that arrive without their task
// list get it fetched concurrently.
func (s *listService) Load(ctx context.Context) error {
	if !s.dashboardID.Valid() {
		return ErrInvalidDashboardID
	}
	boards, err := s.backend.BoardsByDashboard(ctx, s.dashboardID)
	if err != nil {
		s.runner.Logger().Error("loading boards", "dashboard_id", s.dashboardID, "error", err)
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(taskFetchLimit)
	for i := range boards {
		if boards[i].Tasks != nil {
			continue
		}
		g.Go(func() error {
			tasks, err := s.backend.TasksByBoard(gctx, boards[i].ID)
			if err != nil {
				return err
			}
			boards[i].Tasks = tasks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.runner.Logger().Error("loading board tasks", "dashboard_id", s.dashboardID, "error", err)
		return err
	}

	for i := range boards {
		models.SortTasksByID(boards[i].Tasks)
	}
	s.boards.Set(boards)
	return nil
}

// Create adds a board once the backend confirms it. Failures are returned.
func (s *listService) Create(ctx context.Context, name string) (models.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Board{}, ErrEmptyName
	}
	if !s.dashboardID.Valid() {
		return models.Board{}, ErrInvalidDashboardID
	}

	var created models.Board
	key := s.dashboardID.String() + ":create:" + strings.ToLower(name)
	err := s.runner.Do(ctx, entity, "create", key, func(ctx context.Context) error {
		b, err := s.backend.CreateBoard(ctx, name, s.dashboardID)
		if err != nil {
			return err
		}
		if b.Tasks == nil {
			b.Tasks = []models.Task{}
		}
		created = b
		s.boards.Update(func(bs []models.Board) []models.Board {
			return append(bs, b)
		})
		return nil
	})
	return created, err
}

// Delete removes the board immediately. A backend failure puts it back in
// its original position and queues a notification.
func (s *listService) Delete(ctx context.Context, id types.BoardID) error {
	if !id.Valid() {
		return ErrInvalidBoardID
	}
	if !slices.ContainsFunc(s.boards.Get(), func(b models.Board) bool { return b.ID == id }) {
		return ErrBoardNotFound
	}
	return s.runner.DoNotify(ctx, entity, "delete", id.String(), msgDeleteFailed, func(ctx context.Context) error {
		snapshot := s.boards.Get()
		s.boards.Update(func(bs []models.Board) []models.Board {
			return slices.DeleteFunc(bs, func(b models.Board) bool { return b.ID == id })
		})

		if err := s.backend.DeleteBoard(ctx, id); err != nil {
			s.boards.Update(func(bs []models.Board) []models.Board {
				return restoreBoard(bs, snapshot, id)
			})
			return err
		}
		return nil
	})
}

// restoreBoard reinserts the board with id from snapshot at its former
// position relative to boards still present.
func restoreBoard(current, snapshot []models.Board, id types.BoardID) []models.Board {
	idx := slices.IndexFunc(snapshot, func(b models.Board) bool { return b.ID == id })
	if idx < 0 || slices.ContainsFunc(current, func(b models.Board) bool { return b.ID == id }) {
		return current
	}
	pos := 0
	for _, b := range snapshot[:idx] {
		if slices.ContainsFunc(current, func(c models.Board) bool { return c.ID == b.ID }) {
			pos++
		}
	}
	return slices.Insert(current, pos, snapshot[idx])
}

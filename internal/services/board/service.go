package board

import (
	"context"
	"strings"

	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/mutation"
	"github.com/thenoetrevino/taskdeck/internal/state"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

const entity = "board"

// Backend is the subset of the remote adapter the board coordinators use
type Backend interface {
	Board(ctx context.Context, id types.BoardID) (models.Board, error)
	BoardsByDashboard(ctx context.Context, dashboardID types.DashboardID) ([]models.Board, error)
	TasksByBoard(ctx context.Context, boardID types.BoardID) ([]models.Task, error)
	CreateBoard(ctx context.Context, name string, dashboardID types.DashboardID) (models.Board, error)
	RenameBoard(ctx context.Context, id types.BoardID, name string) (models.Board, error)
	DeleteBoard(ctx context.Context, id types.BoardID) error
}

// Service coordinates a single open board
type Service interface {
	Load(ctx context.Context) error
	Board() models.Board
	Loaded() bool
	Rename(ctx context.Context, name string) error
	Subscribe() <-chan struct{}
	Unsubscribe(ch <-chan struct{})
}

type service struct {
	backend Backend
	id      types.BoardID
	runner  *mutation.Runner
	board   *state.Container[models.Board]
}

// NewService creates a coordinator for board id
func NewService(backend Backend, id types.BoardID, runner *mutation.Runner) Service {
	if runner == nil {
		runner = mutation.NewRunner()
	}
	return &service{
		backend: backend,
		id:      id,
		runner:  runner,
		board:   state.New(models.Board{}, models.Board.Clone),
	}
}

func (s *service) Load(ctx context.Context) error {
	if !s.id.Valid() {
		return ErrInvalidBoardID
	}
	b, err := s.backend.Board(ctx, s.id)
	if err != nil {
		s.runner.Logger().Error("loading board", "board_id", s.id, "error", err)
		return err
	}
	if b.Tasks == nil {
		b.Tasks = []models.Task{}
	}
	models.SortTasksByID(b.Tasks)
	s.board.Set(b)
	return nil
}

func (s *service) Board() models.Board { return s.board.Get() }

func (s *service) Loaded() bool { return s.board.Get().ID.Valid() }

func (s *service) Subscribe() <-chan struct{} { return s.board.Subscribe() }

func (s *service) Unsubscribe(ch <-chan struct{}) { s.board.Unsubscribe(ch) }

// Rename shows the new name immediately and syncs with the backend's copy.
// A backend failure restores the old name and queues a notification.
func (s *service) Rename(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if !s.Loaded() {
		return ErrNotLoaded
	}
	return s.runner.DoNotify(ctx, entity, "rename", s.id.String(), msgRenameFailed, func(ctx context.Context) error {
		prior := s.board.Get()
		s.board.Update(func(b models.Board) models.Board {
			b.Name = name
			return b
		})

		updated, err := s.backend.RenameBoard(ctx, s.id, name)
		if err != nil {
			s.board.Update(func(b models.Board) models.Board {
				b.Name = prior.Name
				return b
			})
			return err
		}
		s.board.Update(func(b models.Board) models.Board {
			b.Name = updated.Name
			if updated.Tasks != nil {
				b.Tasks = updated.Tasks
				models.SortTasksByID(b.Tasks)
			}
			return b
		})
		return nil
	})
}

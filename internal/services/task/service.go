package task

import (
	"context"
	"slices"
	"strings"

	"github.com/thenoetrevino/taskdeck/internal/api"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/mutation"
	"github.com/thenoetrevino/taskdeck/internal/state"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

const entity = "task"

// Backend is the subset of the remote adapter the task coordinator uses
type Backend interface {
	TasksByBoard(ctx context.Context, boardID types.BoardID) ([]models.Task, error)
	Task(ctx context.Context, id types.TaskID) (models.Task, error)
	CreateTask(ctx context.Context, boardID types.BoardID, task api.NewTask) (models.Task, error)
	UpdateTaskName(ctx context.Context, id types.TaskID, name string) error
	UpdateTaskDescription(ctx context.Context, id types.TaskID, description string) error
	UpdateTaskStatus(ctx context.Context, id types.TaskID, status models.TaskStatus) error
	DeleteTask(ctx context.Context, id types.TaskID) error
}

// Service coordinates optimistic changes to the tasks of one board
type Service interface {
	// Read operations
	BoardID() types.BoardID
	Tasks() []models.Task
	Filter(query string) []models.Task
	Statistics() models.BoardStatistics
	Subscribe() <-chan struct{}
	Unsubscribe(ch <-chan struct{})

	// Load replaces local state with the backend's task list
	Load(ctx context.Context) error

	// Write operations
	Create(ctx context.Context, req CreateTaskRequest) (models.Task, error)
	Update(ctx context.Context, req UpdateTaskRequest) (models.Task, error)
	ToggleStatus(ctx context.Context, id types.TaskID) error
	Delete(ctx context.Context, id types.TaskID) error
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	Name         string
	Description  string
	Status       models.TaskStatus // Optional: empty means Not_Done
	CreationDate models.Date       // Optional: zero means today
	DueDate      models.Date
}

// UpdateTaskRequest encapsulates all data needed to update a task
// Fields with pointers are optional - nil means don't update
type UpdateTaskRequest struct {
	TaskID      types.TaskID
	Name        *string
	Description *string
	Status      *models.TaskStatus
}

// service implements Service interface
type service struct {
	backend Backend
	boardID types.BoardID
	runner  *mutation.Runner
	tasks   *state.Container[[]models.Task]
}

// NewService creates a task coordinator for one board
func NewService(backend Backend, boardID types.BoardID, runner *mutation.Runner) Service {
	if runner == nil {
		runner = mutation.NewRunner()
	}
	return &service{
		backend: backend,
		boardID: boardID,
		runner:  runner,
		tasks:   state.New([]models.Task{}, slices.Clone[[]models.Task]),
	}
}

// NewServiceWithTasks creates a coordinator seeded with an already-fetched
// task list, as when a board arrives with its tasks embedded
func NewServiceWithTasks(backend Backend, boardID types.BoardID, runner *mutation.Runner, tasks []models.Task) Service {
	s := NewService(backend, boardID, runner).(*service)
	s.tasks.Set(sorted(slices.Clone(tasks)))
	return s
}

func (s *service) BoardID() types.BoardID { return s.boardID }

func (s *service) Tasks() []models.Task { return s.tasks.Get() }

func (s *service) Subscribe() <-chan struct{} { return s.tasks.Subscribe() }

func (s *service) Unsubscribe(ch <-chan struct{}) { s.tasks.Unsubscribe(ch) }

// Filter returns tasks whose description contains query, ignoring case
func (s *service) Filter(query string) []models.Task {
	return models.FilterTasks(s.tasks.Get(), query)
}

// Statistics summarizes completion across all tasks on the board
func (s *service) Statistics() models.BoardStatistics {
	return models.ComputeStatistics(s.tasks.Get())
}

func (s *service) Load(ctx context.Context) error {
	if !s.boardID.Valid() {
		return ErrInvalidBoardID
	}
	tasks, err := s.backend.TasksByBoard(ctx, s.boardID)
	if err != nil {
		s.runner.Logger().Error("loading tasks", "board_id", s.boardID, "error", err)
		return err
	}
	s.tasks.Set(sorted(tasks))
	return nil
}

// Create inserts a provisional task, then swaps it for the backend's copy.
// On failure the provisional task is removed and the error returned.
func (s *service) Create(ctx context.Context, req CreateTaskRequest) (models.Task, error) {
	if err := s.validateCreate(&req); err != nil {
		return models.Task{}, err
	}

	provisional := models.Task{
		ID:           types.TaskID(s.runner.TempID()),
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Status:       req.Status,
		CreationDate: req.CreationDate,
		DueDate:      req.DueDate,
	}

	var created models.Task
	key := s.boardID.String() + ":create:" + strings.ToLower(provisional.Name)
	err := s.runner.Do(ctx, entity, "create", key, func(ctx context.Context) error {
		s.tasks.Update(func(ts []models.Task) []models.Task {
			return sorted(append(ts, provisional))
		})

		task, err := s.backend.CreateTask(ctx, s.boardID, api.NewTaskFrom(provisional))
		if err != nil {
			s.tasks.Update(func(ts []models.Task) []models.Task {
				return remove(ts, provisional.ID)
			})
			return err
		}

		created = task
		s.tasks.Update(func(ts []models.Task) []models.Task {
			ts = remove(ts, task.ID)
			if i := models.FindTask(ts, provisional.ID); i >= 0 {
				ts[i] = task
			} else {
				ts = append(ts, task)
			}
			return sorted(ts)
		})
		return nil
	})
	return created, err
}

func (s *service) validateCreate(req *CreateTaskRequest) error {
	if !s.boardID.Valid() {
		return ErrInvalidBoardID
	}
	if strings.TrimSpace(req.Name) == "" {
		return ErrEmptyName
	}
	if req.Status == "" {
		req.Status = models.StatusNotDone
	}
	if !req.Status.Valid() {
		return ErrInvalidStatus
	}
	if req.CreationDate.IsZero() {
		req.CreationDate = models.Today()
	}
	return nil
}

// Update merges the requested fields locally, sends only the ones that
// changed and then replaces the task with a fresh copy from the backend.
// With nothing changed no call is made and the merged task is returned.
func (s *service) Update(ctx context.Context, req UpdateTaskRequest) (models.Task, error) {
	if !req.TaskID.Valid() {
		return models.Task{}, ErrInvalidTaskID
	}
	if req.Name == nil && req.Description == nil && req.Status == nil {
		return models.Task{}, ErrNothingToUpdate
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return models.Task{}, ErrEmptyName
	}
	if req.Status != nil && !req.Status.Valid() {
		return models.Task{}, ErrInvalidStatus
	}

	var result models.Task
	err := s.runner.Do(ctx, entity, "update", req.TaskID.String(), func(ctx context.Context) error {
		prior, ok := s.find(req.TaskID)
		if !ok {
			return ErrTaskNotFound
		}

		merged := prior
		if req.Name != nil {
			merged.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			merged.Description = *req.Description
		}
		if req.Status != nil {
			merged.Status = *req.Status
		}
		s.replace(merged)

		sent, err := s.sendChanges(ctx, prior, merged)
		if err != nil {
			s.replace(prior)
			return err
		}
		if !sent {
			result = merged
			return nil
		}

		fresh, err := s.backend.Task(ctx, req.TaskID)
		if err != nil {
			s.replace(prior)
			return err
		}
		s.replace(fresh)
		result = fresh
		return nil
	})
	return result, err
}

// sendChanges issues one call per field that differs between prior and next.
func (s *service) sendChanges(ctx context.Context, prior, next models.Task) (bool, error) {
	sent := false
	if next.Name != prior.Name {
		if err := s.backend.UpdateTaskName(ctx, next.ID, next.Name); err != nil {
			return sent, err
		}
		sent = true
	}
	if next.Description != prior.Description {
		if err := s.backend.UpdateTaskDescription(ctx, next.ID, next.Description); err != nil {
			return sent, err
		}
		sent = true
	}
	if next.Status != prior.Status {
		if err := s.backend.UpdateTaskStatus(ctx, next.ID, next.Status); err != nil {
			return sent, err
		}
		sent = true
	}
	return sent, nil
}

// ToggleStatus flips Done and Not_Done (Overdue becomes Done). A backend
// failure restores the task and queues a notification instead of returning.
func (s *service) ToggleStatus(ctx context.Context, id types.TaskID) error {
	if _, ok := s.find(id); !ok {
		return ErrTaskNotFound
	}
	return s.runner.DoNotify(ctx, entity, "toggle_status", id.String(), msgToggleFailed, func(ctx context.Context) error {
		prior, ok := s.find(id)
		if !ok {
			return ErrTaskNotFound
		}
		next := prior
		next.Status = prior.Status.Toggled()
		s.replace(next)

		if err := s.backend.UpdateTaskStatus(ctx, id, next.Status); err != nil {
			s.replace(prior)
			return err
		}
		return nil
	})
}

// Delete removes the task locally before calling the backend. A backend
// failure puts it back and queues a notification instead of returning.
func (s *service) Delete(ctx context.Context, id types.TaskID) error {
	if _, ok := s.find(id); !ok {
		return ErrTaskNotFound
	}
	return s.runner.DoNotify(ctx, entity, "delete", id.String(), msgDeleteFailed, func(ctx context.Context) error {
		prior, ok := s.find(id)
		if !ok {
			return ErrTaskNotFound
		}
		s.tasks.Update(func(ts []models.Task) []models.Task {
			return remove(ts, id)
		})

		if err := s.backend.DeleteTask(ctx, id); err != nil {
			s.tasks.Update(func(ts []models.Task) []models.Task {
				return sorted(append(remove(ts, id), prior))
			})
			return err
		}
		return nil
	})
}

func (s *service) find(id types.TaskID) (models.Task, bool) {
	ts := s.tasks.Get()
	if i := models.FindTask(ts, id); i >= 0 {
		return ts[i], true
	}
	return models.Task{}, false
}

// replace swaps in t for the task with the same id and re-sorts.
func (s *service) replace(t models.Task) {
	s.tasks.Update(func(ts []models.Task) []models.Task {
		if i := models.FindTask(ts, t.ID); i >= 0 {
			ts[i] = t
		}
		return sorted(ts)
	})
}

func remove(ts []models.Task, id types.TaskID) []models.Task {
	return slices.DeleteFunc(ts, func(t models.Task) bool { return t.ID == id })
}

func sorted(ts []models.Task) []models.Task {
	if ts == nil {
		ts = []models.Task{}
	}
	models.SortTasksByID(ts)
	return ts
}

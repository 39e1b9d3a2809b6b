package board

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskdeck/internal/api"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/mutation"
	"github.com/thenoetrevino/taskdeck/internal/state"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

var errBackend = &api.Error{Kind: api.KindBackend, Status: 500, Message: "Failed to delete board", Op: "test"}

type fakeBackend struct {
	mu     sync.Mutex
	boards []models.Board
	tasks  map[types.BoardID][]models.Task
	nextID types.BoardID
	fail   map[string]error
	calls  []string
	during func(op string)
}

func newFakeBackend(boards ...models.Board) *fakeBackend {
	return &fakeBackend{boards: boards, tasks: map[types.BoardID][]models.Task{}, nextID: 50, fail: map[string]error{}}
}

func (f *fakeBackend) call(op string) error {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	during, err := f.during, f.fail[op]
	f.mu.Unlock()
	if during != nil {
		during(op)
	}
	return err
}

func (f *fakeBackend) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeBackend) Board(_ context.Context, id types.BoardID) (models.Board, error) {
	if err := f.call("board"); err != nil {
		return models.Board{}, err
	}
	for _, b := range f.boards {
		if b.ID == id {
			return b.Clone(), nil
		}
	}
	return models.Board{}, &api.Error{Kind: api.KindNotFound, Message: "Board not found."}
}

func (f *fakeBackend) BoardsByDashboard(_ context.Context, d types.DashboardID) ([]models.Board, error) {
	if err := f.call("list"); err != nil {
		return nil, err
	}
	out := []models.Board{}
	for _, b := range f.boards {
		if b.DashboardID == d {
			out = append(out, b.Clone())
		}
	}
	return out, nil
}

func (f *fakeBackend) TasksByBoard(_ context.Context, id types.BoardID) ([]models.Task, error) {
	if err := f.call("tasks"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Task{}, f.tasks[id]...), nil
}

func (f *fakeBackend) CreateBoard(_ context.Context, name string, d types.DashboardID) (models.Board, error) {
	if err := f.call("create"); err != nil {
		return models.Board{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	b := models.Board{ID: f.nextID, Name: name, DashboardID: d}
	f.boards = append(f.boards, b)
	return b, nil
}

func (f *fakeBackend) RenameBoard(_ context.Context, id types.BoardID, name string) (models.Board, error) {
	if err := f.call("rename"); err != nil {
		return models.Board{}, err
	}
	return models.Board{ID: id, Name: name}, nil
}

func (f *fakeBackend) DeleteBoard(_ context.Context, _ types.BoardID) error {
	return f.call("delete")
}

func newRunner(notes *state.NotificationState) *mutation.Runner {
	return mutation.NewRunner(mutation.WithNotifier(notes))
}

// ============================================================================
// Single board
// ============================================================================

func TestService_LoadSortsTasks(t *testing.T) {
	backend := newFakeBackend(models.Board{ID: 7, Name: "Sprint", Tasks: []models.Task{{ID: 3}, {ID: 1}}})
	svc := NewService(backend, 7, nil)

	require.NoError(t, svc.Load(context.Background()))

	b := svc.Board()
	assert.Equal(t, "Sprint", b.Name)
	assert.True(t, models.TasksSortedByID(b.Tasks))
	assert.True(t, svc.Loaded())
}

func TestService_LoadNotFound(t *testing.T) {
	svc := NewService(newFakeBackend(), 7, nil)
	err := svc.Load(context.Background())
	assert.True(t, api.IsNotFound(err))
	assert.False(t, svc.Loaded())
}

func TestService_Rename(t *testing.T) {
	backend := newFakeBackend(models.Board{ID: 7, Name: "Old", Tasks: []models.Task{{ID: 1}}})
	notes := state.NewNotificationState()
	svc := NewService(backend, 7, newRunner(notes))
	require.NoError(t, svc.Load(context.Background()))

	var during string
	backend.during = func(string) { during = svc.Board().Name }

	require.NoError(t, svc.Rename(context.Background(), "  New  "))
	assert.Equal(t, "New", during)
	assert.Equal(t, "New", svc.Board().Name)
	assert.Len(t, svc.Board().Tasks, 1, "tasks survive a rename response without task_list")
	assert.False(t, notes.HasAny())
}

func TestService_RenameFailureRollsBack(t *testing.T) {
	backend := newFakeBackend(models.Board{ID: 7, Name: "Old"})
	notes := state.NewNotificationState()
	svc := NewService(backend, 7, newRunner(notes))
	require.NoError(t, svc.Load(context.Background()))
	backend.fail["rename"] = errBackend

	require.NoError(t, svc.Rename(context.Background(), "New"))

	assert.Equal(t, "Old", svc.Board().Name)
	assert.True(t, notes.HasAny())
}

func TestService_RenameValidation(t *testing.T) {
	svc := NewService(newFakeBackend(), 7, nil)
	assert.ErrorIs(t, svc.Rename(context.Background(), " "), ErrEmptyName)
	assert.ErrorIs(t, svc.Rename(context.Background(), "x"), ErrNotLoaded)
}

// ============================================================================
// Board list (Scenario D)
// ============================================================================

func TestList_LoadFetchesMissingTasksConcurrently(t *testing.T) {
	backend := newFakeBackend(
		models.Board{ID: 1, Name: "a", DashboardID: 3},
		models.Board{ID: 2, Name: "b", DashboardID: 3, Tasks: []models.Task{{ID: 9}}},
		models.Board{ID: 4, Name: "other", DashboardID: 8},
	)
	backend.tasks[1] = []models.Task{{ID: 5}, {ID: 2}}
	svc := NewListService(backend, 3, nil)

	require.NoError(t, svc.Load(context.Background()))

	boards := svc.Boards()
	require.Len(t, boards, 2)
	assert.Equal(t, []models.Task{{ID: 2}, {ID: 5}}, boards[0].Tasks)
	assert.Equal(t, 1, backend.count("tasks"))
}

func TestList_LoadTaskFailure(t *testing.T) {
	backend := newFakeBackend(models.Board{ID: 1, Name: "a", DashboardID: 3})
	backend.fail["tasks"] = errBackend
	svc := NewListService(backend, 3, nil)

	assert.ErrorIs(t, svc.Load(context.Background()), errBackend)
	assert.Empty(t, svc.Boards())
}

func TestList_DeleteOnlyBoard(t *testing.T) {
	backend := newFakeBackend(models.Board{ID: 7, Name: "only", DashboardID: 3, Tasks: []models.Task{}})
	notes := state.NewNotificationState()
	svc := NewListService(backend, 3, newRunner(notes))
	require.NoError(t, svc.Load(context.Background()))

	var during []models.Board
	backend.during = func(op string) {
		if op == "delete" {
			during = svc.Boards()
		}
	}

	require.NoError(t, svc.Delete(context.Background(), 7))

	assert.Empty(t, during)
	assert.Empty(t, svc.Boards())
	assert.False(t, notes.HasAny())
}

func TestList_DeleteFailureRestoresBoard(t *testing.T) {
	backend := newFakeBackend(
		models.Board{ID: 7, Name: "first", DashboardID: 3, Tasks: []models.Task{}},
		models.Board{ID: 8, Name: "second", DashboardID: 3, Tasks: []models.Task{}},
	)
	notes := state.NewNotificationState()
	svc := NewListService(backend, 3, newRunner(notes))
	require.NoError(t, svc.Load(context.Background()))
	before := svc.Boards()
	backend.fail["delete"] = errBackend

	var during []models.Board
	backend.during = func(op string) { during = svc.Boards() }

	require.NoError(t, svc.Delete(context.Background(), 7))

	require.Len(t, during, 1)
	assert.Equal(t, before, svc.Boards())
	assert.True(t, notes.HasAny())
}

func TestList_Create(t *testing.T) {
	backend := newFakeBackend()
	svc := NewListService(backend, 3, nil)
	require.NoError(t, svc.Load(context.Background()))

	b, err := svc.Create(context.Background(), " Backlog ")
	require.NoError(t, err)
	assert.Equal(t, "Backlog", b.Name)
	assert.Equal(t, []models.Board{b}, svc.Boards())

	backend.fail["create"] = errBackend
	_, err = svc.Create(context.Background(), "Broken")
	assert.ErrorIs(t, err, errBackend)
	assert.Len(t, svc.Boards(), 1)

	_, err = svc.Create(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestList_DeleteValidation(t *testing.T) {
	svc := NewListService(newFakeBackend(), 3, nil)
	assert.ErrorIs(t, svc.Delete(context.Background(), 0), ErrInvalidBoardID)
	assert.ErrorIs(t, svc.Delete(context.Background(), 9), ErrBoardNotFound)
}

func TestRestoreBoard(t *testing.T) {
	snapshot := []models.Board{{ID: 1}, {ID: 2}, {ID: 3}}
	current := []models.Board{{ID: 1}, {ID: 3}}

	got := restoreBoard(current, snapshot, 2)
	assert.Equal(t, snapshot, got)

	assert.Equal(t, snapshot, restoreBoard(snapshot, snapshot, 2))
}

package api

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// Wire records mirror the backend's JSON. Required fields are pointers so a
// missing field is distinguishable from a zero value.

type clientWire struct {
	ClientID    *int   `json:"clientId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func (w clientWire) validate() error {
	if w.ClientID == nil || *w.ClientID <= 0 {
		return errors.New("client: missing or invalid clientId")
	}
	return nil
}

func (w clientWire) model() models.Client {
	return models.Client{
		ID:          types.ClientID(*w.ClientID),
		Name:        w.Name,
		Email:       w.Email,
		PhoneNumber: w.PhoneNumber,
	}
}

type authWire struct {
	Token  string      `json:"token"`
	Client *clientWire `json:"client"`
}

func (w authWire) validate() error {
	if w.Token == "" {
		return errors.New("auth: missing token")
	}
	if w.Client == nil {
		return errors.New("auth: missing client")
	}
	return w.Client.validate()
}

type taskWire struct {
	TaskID       *int64      `json:"taskId"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Status       *string     `json:"status"`
	CreationDate models.Date `json:"creationDate"`
	DueDate      models.Date `json:"dueDate"`
}

func (w taskWire) validate() error {
	if w.TaskID == nil || *w.TaskID <= 0 {
		return errors.New("task: missing or invalid taskId")
	}
	if w.Status == nil || !models.TaskStatus(*w.Status).Valid() {
		return fmt.Errorf("task %d: unknown status", *w.TaskID)
	}
	return nil
}

func (w taskWire) model() models.Task {
	return models.Task{
		ID:           types.TaskID(*w.TaskID),
		Name:         w.Name,
		Description:  w.Description,
		Status:       models.TaskStatus(*w.Status),
		CreationDate: w.CreationDate,
		DueDate:      w.DueDate,
	}
}

// taskModels keeps a nil list nil so callers can tell "no tasks" from
// "tasks not included".
func taskModels(ws []taskWire) []models.Task {
	if ws == nil {
		return nil
	}
	tasks := make([]models.Task, 0, len(ws))
	for _, w := range ws {
		tasks = append(tasks, w.model())
	}
	return tasks
}

type boardWire struct {
	BoardID     *int       `json:"boardId"`
	Name        string     `json:"name"`
	DashboardID int        `json:"dashboardId"`
	TaskList    []taskWire `json:"task_list"`
}

func (w boardWire) validate() error {
	if w.BoardID == nil || *w.BoardID <= 0 {
		return errors.New("board: missing or invalid boardId")
	}
	for _, t := range w.TaskList {
		if err := t.validate(); err != nil {
			return fmt.Errorf("board %d: %w", *w.BoardID, err)
		}
	}
	return nil
}

func (w boardWire) model() models.Board {
	return models.Board{
		ID:          types.BoardID(*w.BoardID),
		Name:        w.Name,
		DashboardID: types.DashboardID(w.DashboardID),
		Tasks:       taskModels(w.TaskList),
	}
}

func boardModels(ws []boardWire) []models.Board {
	boards := make([]models.Board, 0, len(ws))
	for _, w := range ws {
		boards = append(boards, w.model())
	}
	return boards
}

type dashboardWire struct {
	DashBoardID *int        `json:"dashBoardId"`
	Name        string      `json:"name"`
	Client      *clientWire `json:"client"`
	BoardList   []boardWire `json:"board_list"`
}

func (w dashboardWire) validate() error {
	if w.DashBoardID == nil || *w.DashBoardID <= 0 {
		return errors.New("dashboard: missing or invalid dashBoardId")
	}
	if w.Client != nil {
		if err := w.Client.validate(); err != nil {
			return fmt.Errorf("dashboard %d: %w", *w.DashBoardID, err)
		}
	}
	for _, b := range w.BoardList {
		if err := b.validate(); err != nil {
			return fmt.Errorf("dashboard %d: %w", *w.DashBoardID, err)
		}
	}
	return nil
}

func (w dashboardWire) model() models.Dashboard {
	d := models.Dashboard{
		ID:     types.DashboardID(*w.DashBoardID),
		Name:   w.Name,
		Boards: boardModels(w.BoardList),
	}
	if w.Client != nil {
		d.Client = w.Client.model()
	}
	for i := range d.Boards {
		if !d.Boards[i].DashboardID.Valid() {
			d.Boards[i].DashboardID = d.ID
		}
	}
	return d
}

// Request bodies.

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest carries a new account's details.
type SignUpRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Password    string `json:"password"`
}

type dashboardBody struct {
	DashBoardName string `json:"dashBoardName"`
	ClientID      int    `json:"clientId"`
}

type boardBody struct {
	Name        string        `json:"name"`
	DashboardID int           `json:"dashboardId"`
	TaskList    []models.Task `json:"task_list"`
}

// NewTask is the payload for creating a task. Zero dates are omitted.
type NewTask struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Status       models.TaskStatus `json:"status"`
	CreationDate string            `json:"creationDate,omitempty"`
	DueDate      string            `json:"dueDate,omitempty"`
}

// NewTaskFrom builds the create payload from a task draft. Status defaults
// to Not_Done.
func NewTaskFrom(t models.Task) NewTask {
	status := t.Status
	if status == "" {
		status = models.StatusNotDone
	}
	return NewTask{
		Name:         t.Name,
		Description:  t.Description,
		Status:       status,
		CreationDate: t.CreationDate.String(),
		DueDate:      t.DueDate.String(),
	}
}

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// TasksByBoard lists the tasks of a board.
func (c *Client) TasksByBoard(ctx context.Context, boardID types.BoardID) ([]models.Task, error) {
	const op = "tasks_by_board"
	resp, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodGet,
		path:       "/task/getAllById/" + boardID.String(),
		defaultMsg: "Failed to fetch tasks",
	})
	if err != nil {
		return nil, err
	}
	ws, err := decodeList[taskWire](op, resp)
	if err != nil {
		return nil, err
	}
	return taskModels(ws), nil
}

// Task fetches a single task.
func (c *Client) Task(ctx context.Context, id types.TaskID) (models.Task, error) {
	const op = "task"
	resp, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodGet,
		path:       "/task/getById/" + id.String(),
		defaultMsg: "Failed to fetch task",
	})
	if err != nil {
		return models.Task{}, err
	}
	if resp.empty() {
		return models.Task{}, notFoundError(op, "Task not found.")
	}
	var w taskWire
	if err := decode(op, resp, &w); err != nil {
		return models.Task{}, err
	}
	return w.model(), nil
}

// CreateTask adds a task to a board and returns it with its assigned id.
func (c *Client) CreateTask(ctx context.Context, boardID types.BoardID, task NewTask) (models.Task, error) {
	const op = "create_task"
	resp, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodPost,
		path:       "/task/addTask/" + boardID.String(),
		body:       task,
		defaultMsg: "Failed to create task",
	})
	if err != nil {
		return models.Task{}, err
	}
	var w taskWire
	if err := decode(op, resp, &w); err != nil {
		return models.Task{}, err
	}
	return w.model(), nil
}

// UpdateTaskName sets a task's name.
func (c *Client) UpdateTaskName(ctx context.Context, id types.TaskID, name string) error {
	return c.patchTask(ctx, "update_task_name", "/task/updateTaskName/", id, url.Values{"name": {name}})
}

// UpdateTaskDescription sets a task's description.
func (c *Client) UpdateTaskDescription(ctx context.Context, id types.TaskID, description string) error {
	return c.patchTask(ctx, "update_task_description", "/task/updateTaskDescription/", id, url.Values{"description": {description}})
}

// UpdateTaskStatus sets a task's status.
func (c *Client) UpdateTaskStatus(ctx context.Context, id types.TaskID, status models.TaskStatus) error {
	return c.patchTask(ctx, "update_task_status", "/task/updateTaskStatus/", id, url.Values{"status": {string(status)}})
}

// patchTask sends a single-field update. The response body is not used:
// coordinators re-fetch the task after all fields are sent.
func (c *Client) patchTask(ctx context.Context, op, path string, id types.TaskID, query url.Values) error {
	_, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodPatch,
		path:       path + id.String(),
		query:      query,
		defaultMsg: "Failed to update task",
	})
	return err
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id types.TaskID) error {
	_, err := c.do(ctx, request{
		op:         "delete_task",
		method:     http.MethodDelete,
		path:       "/task/removeById/" + id.String(),
		defaultMsg: "Failed to delete task",
	})
	return err
}

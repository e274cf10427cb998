package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jaekwang-park/taskapp/internal/model"
)

// CreateSubtask requires TaskID; the backend answers 201.
func (c *Client) CreateSubtask(ctx context.Context, subtask model.Subtask) Result[model.Subtask] {
	if subtask.TaskID.IsMissing() {
		return failure[model.Subtask](http.StatusBadRequest, msgTaskIDRequired)
	}
	subtask.ID = ""
	return do[model.Subtask](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/subtasks",
		body:   subtask,
	})
}

func (c *Client) UpdateSubtask(ctx context.Context, id model.ID, update model.SubtaskUpdate) Result[model.Subtask] {
	return do[model.Subtask](ctx, c, request{
		method: http.MethodPut,
		path:   "/api/subtasks/" + url.PathEscape(id.String()),
		body:   update,
	})
}

// DeleteSubtask succeeds with 204 and no body.
func (c *Client) DeleteSubtask(ctx context.Context, id model.ID) Result[struct{}] {
	return do[struct{}](ctx, c, request{
		method: http.MethodDelete,
		path:   "/api/subtasks/" + url.PathEscape(id.String()),
	})
}

func (c *Client) GetSubtasksByTaskID(ctx context.Context, taskID model.ID) Result[[]model.Subtask] {
	if taskID.IsMissing() {
		return failure[[]model.Subtask](http.StatusBadRequest, msgTaskIDRequired)
	}
	return do[[]model.Subtask](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/subtasks/task/" + url.PathEscape(taskID.String()) + "/subtasks",
	})
}

func (c *Client) ToggleSubtaskCompletion(ctx context.Context, id model.ID) Result[model.Subtask] {
	return do[model.Subtask](ctx, c, request{
		method: http.MethodPut,
		path:   "/api/subtasks/toggle/" + url.PathEscape(id.String()),
	})
}

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jaekwang-park/taskapp/internal/model"
)

const msgTaskIDRequired = "Task ID must not be null"

func (c *Client) CreateTask(ctx context.Context, task model.Task) Result[model.Task] {
	task.ID = ""
	task.CreatedAt = nil
	return do[model.Task](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/tasks",
		body:   task,
	})
}

// UpdateTask sends only the mutable fields. A missing id fails with 400
// without contacting the server.
func (c *Client) UpdateTask(ctx context.Context, task model.Task) Result[model.Task] {
	if task.ID.IsMissing() {
		return failure[model.Task](http.StatusBadRequest, msgTaskIDRequired)
	}
	return do[model.Task](ctx, c, request{
		method: http.MethodPut,
		path:   "/api/tasks/" + url.PathEscape(task.ID.String()),
		body:   task.Mutable(),
	})
}

func (c *Client) GetTaskByID(ctx context.Context, id model.ID) Result[model.Task] {
	if id.IsMissing() {
		return failure[model.Task](http.StatusBadRequest, msgTaskIDRequired)
	}
	return do[model.Task](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/tasks/task/" + url.PathEscape(id.String()),
	})
}

func (c *Client) DeleteTask(ctx context.Context, id model.ID) Result[struct{}] {
	if id.IsMissing() {
		return failure[struct{}](http.StatusBadRequest, msgTaskIDRequired)
	}
	return do[struct{}](ctx, c, request{
		method: http.MethodDelete,
		path:   "/api/tasks/task/" + url.PathEscape(id.String()),
	})
}

func (c *Client) GetAllMyTasks(ctx context.Context) Result[[]model.Task] {
	return do[[]model.Task](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/tasks/all",
	})
}

func (c *Client) GetMyTasksByCompletionStatus(ctx context.Context, completed bool) Result[[]model.Task] {
	return do[[]model.Task](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/tasks/status",
		query:  url.Values{"completed": {strconv.FormatBool(completed)}},
	})
}

func (c *Client) GetMyTasksByPriority(ctx context.Context, priority model.Priority) Result[[]model.Task] {
	return do[[]model.Task](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/tasks/priority",
		query:  url.Values{"priority": {string(priority)}},
	})
}

func (c *Client) FindByTitle(ctx context.Context, title string) Result[[]model.Task] {
	return do[[]model.Task](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/tasks/search",
		query:  url.Values{"title": {title}},
	})
}

func (c *Client) GetTasksDueTodayAndOverdue(ctx context.Context) Result[[]model.Task] {
	return do[[]model.Task](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/tasks/overdue",
	})
}

func (c *Client) GetTaskSummary(ctx context.Context) Result[model.TaskSummary] {
	return do[model.TaskSummary](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/tasks/summary",
	})
}

func (c *Client) GetReminderStatus(ctx context.Context) Result[[]model.ReminderStatus] {
	return do[[]model.ReminderStatus](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/tasks/reminder-status",
	})
}

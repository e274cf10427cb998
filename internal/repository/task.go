package repository

import (
	"context"
	"time"

	"github.com/jaekwang-park/taskapp/internal/model"
)

// TaskQuery narrows ListByUser. Zero fields do not filter.
type TaskQuery struct {
	Completed *bool
	Priority  model.Priority
	// TitleContains matches case-insensitively.
	TitleContains string
	// DueBefore keeps tasks with a due date strictly before it.
	DueBefore *time.Time
}

// ReminderCandidate is a task whose reminder has not been processed yet.
type ReminderCandidate struct {
	TaskID    model.ID
	UserID    string
	Title     string
	Completed bool
}

type TaskRepository interface {
	Create(ctx context.Context, userID string, task model.Task) (model.Task, error)
	GetByID(ctx context.Context, userID string, taskID model.ID) (model.Task, error)
	Update(ctx context.Context, userID string, task model.Task) (model.Task, error)
	Delete(ctx context.Context, userID string, taskID model.ID) error
	ListByUser(ctx context.Context, userID string, q TaskQuery) ([]model.Task, error)
	Summary(ctx context.Context, userID string) (model.TaskSummary, error)

	// PendingReminders lists tasks due strictly before dueBefore whose
	// reminder was neither sent nor skipped.
	PendingReminders(ctx context.Context, dueBefore time.Time) ([]ReminderCandidate, error)
	MarkReminder(ctx context.Context, taskID model.ID, sent bool, reason string) error
	ListReminders(ctx context.Context, userID string) ([]model.ReminderStatus, error)
}

type SubtaskRepository interface {
	Create(ctx context.Context, subtask model.Subtask) (model.Subtask, error)
	GetByID(ctx context.Context, subtaskID model.ID) (model.Subtask, error)
	Update(ctx context.Context, subtask model.Subtask) (model.Subtask, error)
	Delete(ctx context.Context, subtaskID model.ID) error
	ListByTask(ctx context.Context, taskID model.ID) ([]model.Subtask, error)
}

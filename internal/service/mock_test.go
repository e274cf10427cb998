package service_test

import (
	"context"
	"strings"
	"time"

	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/repository"
)

// mockTaskRepo implements repository.TaskRepository for testing
type mockTaskRepo struct {
	createFn           func(ctx context.Context, userID string, task model.Task) (model.Task, error)
	getByIDFn          func(ctx context.Context, userID string, taskID model.ID) (model.Task, error)
	updateFn           func(ctx context.Context, userID string, task model.Task) (model.Task, error)
	deleteFn           func(ctx context.Context, userID string, taskID model.ID) error
	listByUserFn       func(ctx context.Context, userID string, q repository.TaskQuery) ([]model.Task, error)
	summaryFn          func(ctx context.Context, userID string) (model.TaskSummary, error)
	pendingRemindersFn func(ctx context.Context, dueBefore time.Time) ([]repository.ReminderCandidate, error)
	markReminderFn     func(ctx context.Context, taskID model.ID, sent bool, reason string) error
	listRemindersFn    func(ctx context.Context, userID string) ([]model.ReminderStatus, error)
}

func (m *mockTaskRepo) Create(ctx context.Context, userID string, task model.Task) (model.Task, error) {
	return m.createFn(ctx, userID, task)
}
func (m *mockTaskRepo) GetByID(ctx context.Context, userID string, taskID model.ID) (model.Task, error) {
	return m.getByIDFn(ctx, userID, taskID)
}
func (m *mockTaskRepo) Update(ctx context.Context, userID string, task model.Task) (model.Task, error) {
	return m.updateFn(ctx, userID, task)
}
func (m *mockTaskRepo) Delete(ctx context.Context, userID string, taskID model.ID) error {
	return m.deleteFn(ctx, userID, taskID)
}
func (m *mockTaskRepo) ListByUser(ctx context.Context, userID string, q repository.TaskQuery) ([]model.Task, error) {
	return m.listByUserFn(ctx, userID, q)
}
func (m *mockTaskRepo) Summary(ctx context.Context, userID string) (model.TaskSummary, error) {
	return m.summaryFn(ctx, userID)
}
func (m *mockTaskRepo) PendingReminders(ctx context.Context, dueBefore time.Time) ([]repository.ReminderCandidate, error) {
	return m.pendingRemindersFn(ctx, dueBefore)
}
func (m *mockTaskRepo) MarkReminder(ctx context.Context, taskID model.ID, sent bool, reason string) error {
	return m.markReminderFn(ctx, taskID, sent, reason)
}
func (m *mockTaskRepo) ListReminders(ctx context.Context, userID string) ([]model.ReminderStatus, error) {
	return m.listRemindersFn(ctx, userID)
}

// mockSubtaskRepo implements repository.SubtaskRepository for testing
type mockSubtaskRepo struct {
	createFn     func(ctx context.Context, subtask model.Subtask) (model.Subtask, error)
	getByIDFn    func(ctx context.Context, subtaskID model.ID) (model.Subtask, error)
	updateFn     func(ctx context.Context, subtask model.Subtask) (model.Subtask, error)
	deleteFn     func(ctx context.Context, subtaskID model.ID) error
	listByTaskFn func(ctx context.Context, taskID model.ID) ([]model.Subtask, error)
}

func (m *mockSubtaskRepo) Create(ctx context.Context, subtask model.Subtask) (model.Subtask, error) {
	return m.createFn(ctx, subtask)
}
func (m *mockSubtaskRepo) GetByID(ctx context.Context, subtaskID model.ID) (model.Subtask, error) {
	return m.getByIDFn(ctx, subtaskID)
}
func (m *mockSubtaskRepo) Update(ctx context.Context, subtask model.Subtask) (model.Subtask, error) {
	return m.updateFn(ctx, subtask)
}
func (m *mockSubtaskRepo) Delete(ctx context.Context, subtaskID model.ID) error {
	return m.deleteFn(ctx, subtaskID)
}
func (m *mockSubtaskRepo) ListByTask(ctx context.Context, taskID model.ID) ([]model.Subtask, error) {
	return m.listByTaskFn(ctx, taskID)
}

// mockUserRepo implements repository.UserRepository for testing
type mockUserRepo struct {
	createFn     func(ctx context.Context, user model.User) (model.User, error)
	getByEmailFn func(ctx context.Context, email string) (model.User, error)
	getByIDFn    func(ctx context.Context, id string) (model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user model.User) (model.User, error) {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return m.getByEmailFn(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return m.getByIDFn(ctx, id)
}

var now = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

func clock() time.Time { return now }

func containsStr(s, substr string) bool {
	return strings.Contains(s, substr)
}

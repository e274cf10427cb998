package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/repository"
)

// ReasonCompleted is recorded when a reminder is skipped because the task
// was already done.
const ReasonCompleted = "task already completed"

type TaskService struct {
	repo   repository.TaskRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewTaskService(repo repository.TaskRepository, logger *slog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger, now: time.Now}
}

// WithClock overrides the clock used for overdue and reminder cutoffs.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

func validateTask(title string, priority *model.Priority) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if *priority == "" {
		*priority = model.PriorityMedium
	}
	if !priority.IsValid() {
		return fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, *priority)
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, userID string, task model.Task) (model.Task, error) {
	if err := validateTask(task.Title, &task.Priority); err != nil {
		return model.Task{}, err
	}
	task.Title = strings.TrimSpace(task.Title)
	task.CreatedAt = model.NewTimestamp(s.now())

	created, err := s.repo.Create(ctx, userID, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

func (s *TaskService) GetByID(ctx context.Context, userID string, taskID model.ID) (model.Task, error) {
	task, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// Update replaces the mutable fields. A changed due date re-arms the
// reminder; any other edit leaves it as it was.
func (s *TaskService) Update(ctx context.Context, userID string, taskID model.ID, input model.TaskUpdate) (model.Task, error) {
	if err := validateTask(input.Title, &input.Priority); err != nil {
		return model.Task{}, err
	}

	existing, err := s.GetByID(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	rearm := !sameInstant(existing.DueDate, input.DueDate)

	existing.Title = strings.TrimSpace(input.Title)
	existing.Description = input.Description
	existing.Priority = input.Priority
	existing.Completed = input.Completed
	existing.DueDate = input.DueDate

	updated, err := s.repo.Update(ctx, userID, existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	if rearm {
		if err := s.repo.MarkReminder(ctx, taskID, false, ""); err != nil {
			return model.Task{}, fmt.Errorf("failed to re-arm reminder: %w", err)
		}
		updated.ReminderSent = false
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID string, taskID model.ID) error {
	if err := s.repo.Delete(ctx, userID, taskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) List(ctx context.Context, userID string) ([]model.Task, error) {
	return s.list(ctx, userID, repository.TaskQuery{})
}

func (s *TaskService) ListByCompletion(ctx context.Context, userID string, completed bool) ([]model.Task, error) {
	return s.list(ctx, userID, repository.TaskQuery{Completed: &completed})
}

func (s *TaskService) ListByPriority(ctx context.Context, userID string, priority model.Priority) ([]model.Task, error) {
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, priority)
	}
	return s.list(ctx, userID, repository.TaskQuery{Priority: priority})
}

func (s *TaskService) SearchByTitle(ctx context.Context, userID, title string) ([]model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return s.list(ctx, userID, repository.TaskQuery{TitleContains: title})
}

// DueTodayAndOverdue lists incomplete tasks due on or before today.
func (s *TaskService) DueTodayAndOverdue(ctx context.Context, userID string) ([]model.Task, error) {
	cutoff := s.endOfToday()
	pending := false
	return s.list(ctx, userID, repository.TaskQuery{Completed: &pending, DueBefore: &cutoff})
}

func (s *TaskService) list(ctx context.Context, userID string, q repository.TaskQuery) ([]model.Task, error) {
	tasks, err := s.repo.ListByUser(ctx, userID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Summary(ctx context.Context, userID string) (model.TaskSummary, error) {
	summary, err := s.repo.Summary(ctx, userID)
	if err != nil {
		return model.TaskSummary{}, fmt.Errorf("failed to get summary: %w", err)
	}
	return summary, nil
}

func (s *TaskService) ReminderStatus(ctx context.Context, userID string) ([]model.ReminderStatus, error) {
	statuses, err := s.repo.ListReminders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder status: %w", err)
	}
	return statuses, nil
}

// SweepReminders processes every task due by the end of today whose
// reminder is still pending. Incomplete tasks are marked sent; completed
// ones are skipped with a reason. It returns the number of tasks processed.
func (s *TaskService) SweepReminders(ctx context.Context) (int, error) {
	candidates, err := s.repo.PendingReminders(ctx, s.endOfToday())
	if err != nil {
		return 0, fmt.Errorf("failed to load reminders: %w", err)
	}

	for _, c := range candidates {
		sent, reason := true, ""
		if c.Completed {
			sent, reason = false, ReasonCompleted
		}
		if err := s.repo.MarkReminder(ctx, c.TaskID, sent, reason); err != nil {
			return 0, err
		}
		s.logger.InfoContext(ctx, "reminder processed",
			"task_id", c.TaskID,
			"user_id", c.UserID,
			"sent", sent,
			"reason", reason,
		)
	}
	return len(candidates), nil
}

func (s *TaskService) endOfToday() time.Time {
	now := s.now()
	return model.DateOnly(now, now.Location()).AddDate(0, 0, 1)
}

func sameInstant(a, b *model.Timestamp) bool {
	aZero := a == nil || a.IsZero()
	bZero := b == nil || b.IsZero()
	if aZero || bZero {
		return aZero == bZero
	}
	return a.Time.Truncate(time.Millisecond).Equal(b.Time.Truncate(time.Millisecond))
}

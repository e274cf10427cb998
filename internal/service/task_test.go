package service_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/repository"
	"github.com/jaekwang-park/taskapp/internal/service"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func sampleTask() model.Task {
	return model.Task{
		ID:        "1",
		Title:     "Write report",
		Priority:  model.PriorityHigh,
		DueDate:   model.NewTimestamp(now.AddDate(0, 0, 2)),
		CreatedAt: model.NewTimestamp(now),
	}
}

func TestTaskService_Create(t *testing.T) {
	tests := []struct {
		name         string
		input        model.Task
		repoErr      error
		wantErr      string
		wantPriority model.Priority
	}{
		{name: "success", input: model.Task{Title: "Write report", Priority: model.PriorityHigh}, wantPriority: model.PriorityHigh},
		{name: "default priority", input: model.Task{Title: "Write report"}, wantPriority: model.PriorityMedium},
		{name: "blank title", input: model.Task{Title: "   "}, wantErr: "invalid input"},
		{name: "bad priority", input: model.Task{Title: "x", Priority: "URGENT"}, wantErr: "invalid priority"},
		{name: "repo error", input: model.Task{Title: "x"}, repoErr: fmt.Errorf("db error"), wantErr: "failed to create task"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepo{
				createFn: func(ctx context.Context, userID string, task model.Task) (model.Task, error) {
					if tt.repoErr != nil {
						return model.Task{}, tt.repoErr
					}
					task.ID = "1"
					return task, nil
				},
			}
			svc := service.NewTaskService(repo, discard).WithClock(clock)
			got, err := svc.Create(context.Background(), "user-1", tt.input)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !containsStr(err.Error(), tt.wantErr) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Priority != tt.wantPriority {
				t.Errorf("expected priority=%s, got %s", tt.wantPriority, got.Priority)
			}
			if got.CreatedAt == nil || !got.CreatedAt.Equal(now) {
				t.Errorf("expected createdAt=%v, got %v", now, got.CreatedAt)
			}
		})
	}
}

func TestTaskService_GetByID_NotFound(t *testing.T) {
	repo := &mockTaskRepo{
		getByIDFn: func(ctx context.Context, userID string, taskID model.ID) (model.Task, error) {
			return model.Task{}, fmt.Errorf("failed to scan task: %w", sql.ErrNoRows)
		},
	}
	svc := service.NewTaskService(repo, discard)

	_, err := svc.GetByID(context.Background(), "user-1", "404")
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskService_Update_ReminderRearm(t *testing.T) {
	existing := sampleTask()
	existing.ReminderSent = true

	tests := []struct {
		name      string
		dueDate   *model.Timestamp
		wantRearm bool
	}{
		{name: "same due date keeps reminder", dueDate: model.NewTimestamp(existing.DueDate.Time), wantRearm: false},
		{name: "new due date re-arms", dueDate: model.NewTimestamp(now.AddDate(0, 0, 5)), wantRearm: true},
		{name: "cleared due date re-arms", dueDate: nil, wantRearm: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rearmed := false
			repo := &mockTaskRepo{
				getByIDFn: func(ctx context.Context, userID string, taskID model.ID) (model.Task, error) {
					return existing, nil
				},
				updateFn: func(ctx context.Context, userID string, task model.Task) (model.Task, error) {
					return task, nil
				},
				markReminderFn: func(ctx context.Context, taskID model.ID, sent bool, reason string) error {
					if sent || reason != "" {
						t.Errorf("expected re-arm (false, \"\"), got (%v, %q)", sent, reason)
					}
					rearmed = true
					return nil
				},
			}
			svc := service.NewTaskService(repo, discard)

			got, err := svc.Update(context.Background(), "user-1", existing.ID, model.TaskUpdate{
				Title:    "Write report v2",
				Priority: model.PriorityLow,
				DueDate:  tt.dueDate,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rearmed != tt.wantRearm {
				t.Errorf("expected rearm=%v, got %v", tt.wantRearm, rearmed)
			}
			if got.ReminderSent == tt.wantRearm {
				t.Errorf("expected reminderSent=%v, got %v", !tt.wantRearm, got.ReminderSent)
			}
			if got.Title != "Write report v2" || got.Priority != model.PriorityLow {
				t.Errorf("mutable fields not applied: %+v", got)
			}
			if got.ID != existing.ID || !got.CreatedAt.Equal(existing.CreatedAt.Time) {
				t.Errorf("identity fields changed: %+v", got)
			}
		})
	}
}

func TestTaskService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "success"},
		{name: "not found", repoErr: sql.ErrNoRows, wantErr: service.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepo{
				deleteFn: func(ctx context.Context, userID string, taskID model.ID) error {
					return tt.repoErr
				},
			}
			err := service.NewTaskService(repo, discard).Delete(context.Background(), "user-1", "1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTaskService_ListQueries(t *testing.T) {
	var got repository.TaskQuery
	repo := &mockTaskRepo{
		listByUserFn: func(ctx context.Context, userID string, q repository.TaskQuery) ([]model.Task, error) {
			got = q
			return []model.Task{}, nil
		},
	}
	svc := service.NewTaskService(repo, discard).WithClock(clock)
	ctx := context.Background()

	if _, err := svc.ListByCompletion(ctx, "u", true); err != nil || got.Completed == nil || !*got.Completed {
		t.Errorf("completion query not applied: %+v %v", got, err)
	}
	if _, err := svc.ListByPriority(ctx, "u", model.PriorityHigh); err != nil || got.Priority != model.PriorityHigh {
		t.Errorf("priority query not applied: %+v %v", got, err)
	}
	if _, err := svc.ListByPriority(ctx, "u", "nope"); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.SearchByTitle(ctx, "u", "  rent "); err != nil || got.TitleContains != "rent" {
		t.Errorf("search query not applied: %+v %v", got, err)
	}
	if _, err := svc.SearchByTitle(ctx, "u", " "); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	if _, err := svc.DueTodayAndOverdue(ctx, "u"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantCutoff := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	if got.DueBefore == nil || !got.DueBefore.Equal(wantCutoff) {
		t.Errorf("expected cutoff %v, got %v", wantCutoff, got.DueBefore)
	}
	if got.Completed == nil || *got.Completed {
		t.Error("expected overdue query to exclude completed tasks")
	}
}

func TestTaskService_SweepReminders(t *testing.T) {
	marked := map[model.ID]string{}
	repo := &mockTaskRepo{
		pendingRemindersFn: func(ctx context.Context, dueBefore time.Time) ([]repository.ReminderCandidate, error) {
			return []repository.ReminderCandidate{
				{TaskID: "1", UserID: "u", Title: "Pay rent"},
				{TaskID: "2", UserID: "u", Title: "Buy milk", Completed: true},
			}, nil
		},
		markReminderFn: func(ctx context.Context, taskID model.ID, sent bool, reason string) error {
			if sent {
				marked[taskID] = "sent"
			} else {
				marked[taskID] = reason
			}
			return nil
		},
	}
	svc := service.NewTaskService(repo, discard).WithClock(clock)

	n, err := svc.SweepReminders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 processed, got %d", n)
	}
	if marked["1"] != "sent" {
		t.Errorf("expected task 1 sent, got %q", marked["1"])
	}
	if marked["2"] != service.ReasonCompleted {
		t.Errorf("expected task 2 skipped, got %q", marked["2"])
	}
}

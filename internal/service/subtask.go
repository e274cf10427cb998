package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/repository"
)

// SubtaskService scopes every subtask through its parent task, so a user
// never sees another user's subtasks.
type SubtaskService struct {
	tasks    repository.TaskRepository
	subtasks repository.SubtaskRepository
}

func NewSubtaskService(tasks repository.TaskRepository, subtasks repository.SubtaskRepository) *SubtaskService {
	return &SubtaskService{tasks: tasks, subtasks: subtasks}
}

func (s *SubtaskService) Create(ctx context.Context, userID string, subtask model.Subtask) (model.Subtask, error) {
	if subtask.TaskID.IsMissing() {
		return model.Subtask{}, fmt.Errorf("%w: task id is required", ErrInvalidInput)
	}
	subtask.Title = strings.TrimSpace(subtask.Title)
	if subtask.Title == "" {
		return model.Subtask{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if err := s.checkTask(ctx, userID, subtask.TaskID); err != nil {
		return model.Subtask{}, err
	}

	created, err := s.subtasks.Create(ctx, subtask)
	if err != nil {
		return model.Subtask{}, fmt.Errorf("failed to create subtask: %w", err)
	}
	return created, nil
}

func (s *SubtaskService) Update(ctx context.Context, userID string, subtaskID model.ID, input model.SubtaskUpdate) (model.Subtask, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.Subtask{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	existing, err := s.get(ctx, userID, subtaskID)
	if err != nil {
		return model.Subtask{}, err
	}
	existing.Title = title

	updated, err := s.subtasks.Update(ctx, existing)
	if err != nil {
		return model.Subtask{}, fmt.Errorf("failed to update subtask: %w", err)
	}
	return updated, nil
}

func (s *SubtaskService) Toggle(ctx context.Context, userID string, subtaskID model.ID) (model.Subtask, error) {
	existing, err := s.get(ctx, userID, subtaskID)
	if err != nil {
		return model.Subtask{}, err
	}
	existing.Completed = !existing.Completed

	updated, err := s.subtasks.Update(ctx, existing)
	if err != nil {
		return model.Subtask{}, fmt.Errorf("failed to toggle subtask: %w", err)
	}
	return updated, nil
}

func (s *SubtaskService) Delete(ctx context.Context, userID string, subtaskID model.ID) error {
	if _, err := s.get(ctx, userID, subtaskID); err != nil {
		return err
	}
	if err := s.subtasks.Delete(ctx, subtaskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete subtask: %w", err)
	}
	return nil
}

func (s *SubtaskService) ListByTask(ctx context.Context, userID string, taskID model.ID) ([]model.Subtask, error) {
	if err := s.checkTask(ctx, userID, taskID); err != nil {
		return nil, err
	}
	subtasks, err := s.subtasks.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtasks: %w", err)
	}
	return subtasks, nil
}

func (s *SubtaskService) get(ctx context.Context, userID string, subtaskID model.ID) (model.Subtask, error) {
	subtask, err := s.subtasks.GetByID(ctx, subtaskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Subtask{}, ErrNotFound
		}
		return model.Subtask{}, fmt.Errorf("failed to get subtask: %w", err)
	}
	if err := s.checkTask(ctx, userID, subtask.TaskID); err != nil {
		return model.Subtask{}, err
	}
	return subtask, nil
}

func (s *SubtaskService) checkTask(ctx context.Context, userID string, taskID model.ID) error {
	if _, err := s.tasks.GetByID(ctx, userID, taskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/jaekwang-park/taskapp/internal/model"
)

// SQLiteSubtaskRepository does not check ownership; callers resolve the
// parent task for the user first.
type SQLiteSubtaskRepository struct {
	db *sql.DB
}

func NewSQLiteSubtask(db *sql.DB) *SQLiteSubtaskRepository {
	return &SQLiteSubtaskRepository{db: db}
}

func (r *SQLiteSubtaskRepository) Create(ctx context.Context, subtask model.Subtask) (model.Subtask, error) {
	query := `
		INSERT INTO subtasks (task_id, title, completed)
		VALUES (?, ?, ?)
		RETURNING id, task_id, title, completed`

	row := r.db.QueryRowContext(ctx, query, subtask.TaskID.String(), subtask.Title, subtask.Completed)
	return scanSubtask(row)
}

func (r *SQLiteSubtaskRepository) GetByID(ctx context.Context, subtaskID model.ID) (model.Subtask, error) {
	query := `SELECT id, task_id, title, completed FROM subtasks WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, subtaskID.String())
	return scanSubtask(row)
}

func (r *SQLiteSubtaskRepository) Update(ctx context.Context, subtask model.Subtask) (model.Subtask, error) {
	query := `
		UPDATE subtasks
		SET title = ?, completed = ?
		WHERE id = ?
		RETURNING id, task_id, title, completed`

	row := r.db.QueryRowContext(ctx, query, subtask.Title, subtask.Completed, subtask.ID.String())
	return scanSubtask(row)
}

func (r *SQLiteSubtaskRepository) Delete(ctx context.Context, subtaskID model.ID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM subtasks WHERE id = ?`, subtaskID.String())
	if err != nil {
		return fmt.Errorf("failed to delete subtask: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SQLiteSubtaskRepository) ListByTask(ctx context.Context, taskID model.ID) ([]model.Subtask, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, task_id, title, completed FROM subtasks WHERE task_id = ? ORDER BY id`,
		taskID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtasks: %w", err)
	}
	defer rows.Close()

	subtasks := []model.Subtask{}
	for rows.Next() {
		s, err := scanSubtask(rows)
		if err != nil {
			return nil, err
		}
		subtasks = append(subtasks, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subtasks: %w", err)
	}
	return subtasks, nil
}

func scanSubtask(row scannable) (model.Subtask, error) {
	var (
		s      model.Subtask
		id     int64
		taskID int64
	)
	if err := row.Scan(&id, &taskID, &s.Title, &s.Completed); err != nil {
		return model.Subtask{}, fmt.Errorf("failed to scan subtask: %w", err)
	}
	s.ID = model.ID(strconv.FormatInt(id, 10))
	s.TaskID = model.ID(strconv.FormatInt(taskID, 10))
	return s, nil
}

var _ SubtaskRepository = (*SQLiteSubtaskRepository)(nil)

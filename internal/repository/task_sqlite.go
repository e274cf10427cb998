package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jaekwang-park/taskapp/internal/model"
)

// Timestamps are stored as unix milliseconds so range filters compare
// numerically.
type SQLiteTaskRepository struct {
	db *sql.DB
}

func NewSQLiteTask(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

const taskColumns = `id, title, description, due_date, priority, completed, reminder_sent, created_at`

func (r *SQLiteTaskRepository) Create(ctx context.Context, userID string, task model.Task) (model.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description, due_date, priority, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + taskColumns

	createdAt := time.Now()
	if task.CreatedAt != nil && !task.CreatedAt.IsZero() {
		createdAt = task.CreatedAt.Time
	}

	row := r.db.QueryRowContext(ctx, query,
		userID, task.Title, task.Description, millisOrNil(task.DueDate),
		string(task.Priority), task.Completed, createdAt.UnixMilli(),
	)
	return scanTask(row)
}

func (r *SQLiteTaskRepository) GetByID(ctx context.Context, userID string, taskID model.ID) (model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`

	row := r.db.QueryRowContext(ctx, query, taskID.String(), userID)
	return scanTask(row)
}

// Update writes the mutable fields. Reminder columns are left alone.
func (r *SQLiteTaskRepository) Update(ctx context.Context, userID string, task model.Task) (model.Task, error) {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, due_date = ?, priority = ?, completed = ?
		WHERE id = ? AND user_id = ?
		RETURNING ` + taskColumns

	row := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, millisOrNil(task.DueDate), string(task.Priority), task.Completed,
		task.ID.String(), userID,
	)
	return scanTask(row)
}

// Delete removes the task and its subtasks.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, userID string, taskID model.ID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, taskID.String(), userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM subtasks WHERE task_id = ?`, taskID.String()); err != nil {
		return fmt.Errorf("failed to delete subtasks: %w", err)
	}

	return tx.Commit()
}

func (r *SQLiteTaskRepository) ListByUser(ctx context.Context, userID string, q TaskQuery) ([]model.Task, error) {
	args := []any{userID}
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`

	if q.Completed != nil {
		query += " AND completed = ?"
		args = append(args, *q.Completed)
	}
	if q.Priority != "" {
		query += " AND priority = ?"
		args = append(args, string(q.Priority))
	}
	if q.TitleContains != "" {
		query += " AND instr(lower(title), ?) > 0"
		args = append(args, strings.ToLower(q.TitleContains))
	}
	if q.DueBefore != nil {
		query += " AND due_date IS NOT NULL AND due_date < ?"
		args = append(args, q.DueBefore.UnixMilli())
	}

	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepository) Summary(ctx context.Context, userID string) (model.TaskSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(completed), 0),
			COALESCE(SUM(CASE WHEN priority = 'HIGH' THEN 1 ELSE 0 END), 0)
		FROM tasks
		WHERE user_id = ?`

	var s model.TaskSummary
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&s.TotalTasks, &s.CompletedTasks, &s.HighPriorityTasks); err != nil {
		return model.TaskSummary{}, fmt.Errorf("failed to summarize tasks: %w", err)
	}
	s.PendingTasks = s.TotalTasks - s.CompletedTasks
	if s.TotalTasks > 0 {
		s.CompletionPercentage = float64(s.CompletedTasks) * 100 / float64(s.TotalTasks)
	}
	return s, nil
}

func (r *SQLiteTaskRepository) PendingReminders(ctx context.Context, dueBefore time.Time) ([]ReminderCandidate, error) {
	query := `
		SELECT id, user_id, title, completed
		FROM tasks
		WHERE due_date IS NOT NULL AND due_date < ?
			AND reminder_sent = 0 AND reminder_reason = ''
		ORDER BY due_date`

	rows, err := r.db.QueryContext(ctx, query, dueBefore.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reminders: %w", err)
	}
	defer rows.Close()

	var out []ReminderCandidate
	for rows.Next() {
		var (
			c      ReminderCandidate
			id     int64
			userID int64
		)
		if err := rows.Scan(&id, &userID, &c.Title, &c.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan reminder candidate: %w", err)
		}
		c.TaskID = model.ID(strconv.FormatInt(id, 10))
		c.UserID = strconv.FormatInt(userID, 10)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminder candidates: %w", err)
	}
	return out, nil
}

// MarkReminder records the outcome of a reminder. sent=false with an empty
// reason re-arms it.
func (r *SQLiteTaskRepository) MarkReminder(ctx context.Context, taskID model.ID, sent bool, reason string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET reminder_sent = ?, reminder_reason = ? WHERE id = ?`,
		sent, reason, taskID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to mark reminder: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepository) ListReminders(ctx context.Context, userID string) ([]model.ReminderStatus, error) {
	query := `
		SELECT title, reminder_sent, reminder_reason
		FROM tasks
		WHERE user_id = ? AND (reminder_sent = 1 OR reminder_reason != '')
		ORDER BY due_date`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	out := []model.ReminderStatus{}
	for rows.Next() {
		var s model.ReminderStatus
		if err := rows.Scan(&s.TaskTitle, &s.Sent, &s.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}
	return out, nil
}

func scanTask(row scannable) (model.Task, error) {
	var (
		t         model.Task
		id        int64
		priority  string
		dueDate   sql.NullInt64
		createdAt int64
	)
	err := row.Scan(&id, &t.Title, &t.Description, &dueDate, &priority, &t.Completed, &t.ReminderSent, &createdAt)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}
	t.ID = model.ID(strconv.FormatInt(id, 10))
	t.Priority = model.Priority(priority)
	if dueDate.Valid {
		t.DueDate = model.NewTimestamp(time.UnixMilli(dueDate.Int64))
	}
	t.CreatedAt = model.NewTimestamp(time.UnixMilli(createdAt))
	return t, nil
}

func millisOrNil(ts *model.Timestamp) any {
	if ts == nil || ts.IsZero() {
		return nil
	}
	return ts.UnixMilli()
}

var _ TaskRepository = (*SQLiteTaskRepository)(nil)

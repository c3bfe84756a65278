package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"task_manager/internal/models"

	"github.com/google/uuid"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

var _ Tasks = (*TaskRepository)(nil)

const (
	insertTaskSQL = `
		INSERT INTO tasks (id, title, description, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	selectTaskSQL = `
		SELECT id, title, description, completed, created_at, updated_at
		FROM tasks WHERE id = ?
	`
	setCompletedSQL = `UPDATE tasks SET completed = ?, updated_at = ? WHERE id = ?`
	deleteTaskSQL   = `DELETE FROM tasks WHERE id = ?`
	countTasksSQL   = `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0)
		FROM tasks
	`
)

// Create persists a new task with a generated id and completed=false.
func (r *TaskRepository) Create(ctx context.Context, title, description string) (models.Task, error) {
	now := time.Now().UTC()
	t := models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := r.db.ExecContext(ctx, insertTaskSQL,
		t.ID, t.Title, t.Description, t.Completed, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

// List returns tasks in store order, optionally filtered by completed flag.
func (r *TaskRepository) List(ctx context.Context, completed *bool) ([]models.Task, error) {
	q := `SELECT id, title, description, completed, created_at, updated_at FROM tasks`
	var args []any
	if completed != nil {
		q += ` WHERE completed = ?`
		args = append(args, *completed)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	out := make([]models.Task, 0, 16)
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.CreatedAt = t.CreatedAt.UTC()
		t.UpdatedAt = t.UpdatedAt.UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single task. Returns (nil, nil) if not found.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	err := r.db.QueryRowContext(ctx, selectTaskSQL, id).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select task %q: %w", id, err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

// UpdateFields applies every field present in the patch and returns the
// updated record, or (nil, nil) if the id does not exist.
func (r *TaskRepository) UpdateFields(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	var (
		sets []string
		args []any
	)
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *patch.Completed)
	}
	if len(sets) == 0 {
		// nothing to change; still report NotFound for missing ids
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	q := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("update task %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected for task %q: %w", id, err)
	}
	if n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// SetCompleted updates exactly the completed flag, leaving every other field
// untouched. Returns (nil, nil) if the id does not exist.
func (r *TaskRepository) SetCompleted(ctx context.Context, id string, completed bool) (*models.Task, error) {
	res, err := r.db.ExecContext(ctx, setCompletedSQL, completed, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("set completed for task %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected for task %q: %w", id, err)
	}
	if n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// Delete removes a task and reports whether it existed.
func (r *TaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteTaskSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete task %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for task %q: %w", id, err)
	}
	return n > 0, nil
}

// Counts returns total/completed/pending tallies for the WebSocket feed.
func (r *TaskRepository) Counts(ctx context.Context) (models.TaskSummary, error) {
	var total, completed int
	if err := r.db.QueryRowContext(ctx, countTasksSQL).Scan(&total, &completed); err != nil {
		return models.TaskSummary{}, fmt.Errorf("count tasks: %w", err)
	}
	return models.TaskSummary{
		Total:     total,
		Completed: completed,
		Pending:   total - completed,
	}, nil
}

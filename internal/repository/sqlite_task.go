package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/triage/internal/db"
	"github.com/alexanderramin/triage/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, project_id, title, status, assignee, deadline, created_at, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Title,
		string(t.Status),
		t.Assignee,
		nullableTimeToString(t.Deadline, dateLayout),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	return r.Filter(ctx, TaskFilter{})
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return r.Filter(ctx, TaskFilter{ProjectID: projectID})
}

func (r *SQLiteTaskRepo) Filter(ctx context.Context, f TaskFilter) ([]*domain.Task, error) {
	var where []string
	var args []any
	if f.ProjectID != "" {
		where = append(where, "project_id = ?")
		args = append(args, f.ProjectID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET project_id = ?, title = ?, status = ?, assignee = ?, deadline = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.ProjectID,
		t.Title,
		string(t.Status),
		t.Assignee,
		nullableTimeToString(t.Deadline, dateLayout),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return checkAffected(res, "task", t.ID)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return checkAffected(res, "task", id)
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var status, createdAt, updatedAt string
	var deadline sql.NullString

	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &status, &t.Assignee, &deadline, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = domain.TaskStatus(status)
	t.Deadline = parseNullableTime(deadline, dateLayout)

	t.CreatedAt, t.UpdatedAt, err = parseTimestamps(createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

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

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, short_id, title, client, description, status_id, priority, progress,
	start_date, deadline, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ShortID,
		p.Title,
		p.Client,
		p.Description,
		nullableString(p.StatusID),
		string(p.Priority),
		p.Progress,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.Deadline, dateLayout),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return r.getOne(ctx, query, id)
}

func (r *SQLiteProjectRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE short_id != '' AND UPPER(short_id) = UPPER(?)`
	return r.getOne(ctx, query, shortID)
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	return r.Filter(ctx, ProjectFilter{})
}

func (r *SQLiteProjectRepo) Filter(ctx context.Context, f ProjectFilter) ([]*domain.Project, error) {
	var where []string
	var args []any
	if f.StatusID != "" {
		where = append(where, "status_id = ?")
		args = append(args, f.StatusID)
	}
	if f.Priority != "" {
		where = append(where, "priority = ?")
		args = append(args, string(f.Priority))
	}
	if f.Client != "" {
		where = append(where, "client = ? COLLATE NOCASE")
		args = append(args, f.Client)
	}

	query := `SELECT ` + projectColumns + ` FROM projects`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET short_id = ?, title = ?, client = ?, description = ?, status_id = ?,
		priority = ?, progress = ?, start_date = ?, deadline = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.ShortID,
		p.Title,
		p.Client,
		p.Description,
		nullableString(p.StatusID),
		string(p.Priority),
		p.Progress,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.Deadline, dateLayout),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return checkAffected(res, "project", p.ID)
}

// Delete removes the project together with its tasks and reports.
func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return checkAffected(res, "project", id)
}

func (r *SQLiteProjectRepo) getOne(ctx context.Context, query, arg string) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", arg, ErrNotFound)
	}
	return p, err
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var statusID, startDate, deadline sql.NullString
	var priority, createdAt, updatedAt string

	err := row.Scan(
		&p.ID, &p.ShortID, &p.Title, &p.Client, &p.Description,
		&statusID, &priority, &p.Progress,
		&startDate, &deadline,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.StatusID = statusID.String
	p.Priority = domain.Priority(priority)
	p.StartDate = parseNullableTime(startDate, dateLayout)
	p.Deadline = parseNullableTime(deadline, dateLayout)

	p.CreatedAt, p.UpdatedAt, err = parseTimestamps(createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

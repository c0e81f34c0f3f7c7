package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/triage/internal/db"
	"github.com/alexanderramin/triage/internal/domain"
)

// SQLiteProjectStatusRepo implements ProjectStatusRepo using a SQLite database.
type SQLiteProjectStatusRepo struct {
	db db.DBTX
}

// NewSQLiteProjectStatusRepo creates a new SQLiteProjectStatusRepo.
func NewSQLiteProjectStatusRepo(conn db.DBTX) *SQLiteProjectStatusRepo {
	return &SQLiteProjectStatusRepo{db: conn}
}

const statusColumns = `id, name, phase, is_final, order_index, created_at, updated_at`

func (r *SQLiteProjectStatusRepo) Create(ctx context.Context, s *domain.ProjectStatus) error {
	query := `INSERT INTO project_statuses (` + statusColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		string(s.Phase),
		boolToInt(s.IsFinal),
		s.OrderIndex,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project status: %w", err)
	}
	return nil
}

func (r *SQLiteProjectStatusRepo) GetByID(ctx context.Context, id string) (*domain.ProjectStatus, error) {
	query := `SELECT ` + statusColumns + ` FROM project_statuses WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// GetByName matches the display name case-insensitively.
func (r *SQLiteProjectStatusRepo) GetByName(ctx context.Context, name string) (*domain.ProjectStatus, error) {
	query := `SELECT ` + statusColumns + ` FROM project_statuses WHERE name = ?`
	return r.getOne(ctx, query, name)
}

func (r *SQLiteProjectStatusRepo) List(ctx context.Context) ([]*domain.ProjectStatus, error) {
	query := `SELECT ` + statusColumns + ` FROM project_statuses ORDER BY order_index, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing project statuses: %w", err)
	}
	defer rows.Close()

	var statuses []*domain.ProjectStatus
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project statuses: %w", err)
	}
	return statuses, nil
}

func (r *SQLiteProjectStatusRepo) Update(ctx context.Context, s *domain.ProjectStatus) error {
	query := `UPDATE project_statuses SET name = ?, phase = ?, is_final = ?, order_index = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		string(s.Phase),
		boolToInt(s.IsFinal),
		s.OrderIndex,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project status: %w", err)
	}
	return checkAffected(res, "project status", s.ID)
}

// Delete removes the status. Projects that referenced it keep existing with
// no status.
func (r *SQLiteProjectStatusRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_statuses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project status: %w", err)
	}
	return checkAffected(res, "project status", id)
}

func (r *SQLiteProjectStatusRepo) getOne(ctx context.Context, query string, arg string) (*domain.ProjectStatus, error) {
	s, err := scanStatus(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project status %s: %w", arg, ErrNotFound)
	}
	return s, err
}

func scanStatus(row rowScanner) (*domain.ProjectStatus, error) {
	var s domain.ProjectStatus
	var phase, createdAt, updatedAt string
	var isFinal int

	if err := row.Scan(&s.ID, &s.Name, &phase, &isFinal, &s.OrderIndex, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project status: %w", err)
	}

	s.Phase = domain.StatusPhase(phase)
	s.IsFinal = intToBool(isFinal)

	var err error
	s.CreatedAt, s.UpdatedAt, err = parseTimestamps(createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

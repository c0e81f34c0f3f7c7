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

// SQLiteClientReportRepo implements ClientReportRepo using a SQLite database.
type SQLiteClientReportRepo struct {
	db db.DBTX
}

// NewSQLiteClientReportRepo creates a new SQLiteClientReportRepo.
func NewSQLiteClientReportRepo(conn db.DBTX) *SQLiteClientReportRepo {
	return &SQLiteClientReportRepo{db: conn}
}

const reportColumns = `id, project_id, title, summary, highlights, risks, source, created_at`

func (r *SQLiteClientReportRepo) Create(ctx context.Context, rep *domain.ClientReport) error {
	highlights, err := encodeStrings(rep.Highlights)
	if err != nil {
		return fmt.Errorf("encoding highlights: %w", err)
	}
	risks, err := encodeStrings(rep.Risks)
	if err != nil {
		return fmt.Errorf("encoding risks: %w", err)
	}

	query := `INSERT INTO client_reports (` + reportColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rep.ID,
		nullableString(rep.ProjectID),
		rep.Title,
		rep.Summary,
		highlights,
		risks,
		string(rep.Source),
		rep.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting client report: %w", err)
	}
	return nil
}

func (r *SQLiteClientReportRepo) GetByID(ctx context.Context, id string) (*domain.ClientReport, error) {
	query := `SELECT ` + reportColumns + ` FROM client_reports WHERE id = ?`
	rep, err := scanReport(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client report %s: %w", id, ErrNotFound)
	}
	return rep, err
}

func (r *SQLiteClientReportRepo) List(ctx context.Context, projectID string) ([]*domain.ClientReport, error) {
	query := `SELECT ` + reportColumns + ` FROM client_reports`
	var args []any
	if projectID != "" {
		query += ` WHERE project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing client reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.ClientReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client reports: %w", err)
	}
	return reports, nil
}

func scanReport(row rowScanner) (*domain.ClientReport, error) {
	var rep domain.ClientReport
	var projectID sql.NullString
	var highlights, risks, source, createdAt string

	err := row.Scan(&rep.ID, &projectID, &rep.Title, &rep.Summary, &highlights, &risks, &source, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning client report: %w", err)
	}

	rep.ProjectID = projectID.String
	rep.Source = domain.ReportSource(source)
	if rep.Highlights, err = decodeStrings(highlights); err != nil {
		return nil, fmt.Errorf("decoding highlights: %w", err)
	}
	if rep.Risks, err = decodeStrings(risks); err != nil {
		return nil, fmt.Errorf("decoding risks: %w", err)
	}
	if rep.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &rep, nil
}

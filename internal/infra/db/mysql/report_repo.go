package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/bryanwahyu/labinterpreter/internal/domain/report"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save inserts or updates a report record
func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	const q = `
INSERT INTO lab_reports
  (id, vendor, model, prompt_version, row_count, object_key, url, created_at)
VALUES (?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  object_key=VALUES(object_key), url=VALUES(url);
`
	createdAt := rep.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q,
		rep.ID, stringOrDash(rep.Vendor), stringOrDash(rep.Model), stringOrDash(rep.PromptVersion),
		rep.RowCount, rep.ObjectKey, rep.URL, createdAt,
	)
	return err
}

// Get by ID
func (r *ReportRepository) Get(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	const q = `
SELECT id, vendor, model, prompt_version, row_count, object_key, url, created_at
FROM lab_reports
WHERE id=? LIMIT 1;`
	var rep domain.Report
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rep.ID, &rep.Vendor, &rep.Model, &rep.PromptVersion, &rep.RowCount, &rep.ObjectKey, &rep.URL, &rep.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// Latest returns the newest reports first
func (r *ReportRepository) Latest(ctx context.Context, limit int) ([]*domain.Report, error) {
	const q = `
SELECT id, vendor, model, prompt_version, row_count, object_key, url, created_at
FROM lab_reports
ORDER BY created_at DESC, id DESC
LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Report{}
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(&rep.ID, &rep.Vendor, &rep.Model, &rep.PromptVersion, &rep.RowCount, &rep.ObjectKey, &rep.URL, &rep.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &rep)
	}
	return out, rows.Err()
}

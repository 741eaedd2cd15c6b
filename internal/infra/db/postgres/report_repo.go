package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	domain "github.com/bryanwahyu/labinterpreter/internal/domain/report"
)

type ReportRepository struct{ db *sql.DB }

func NewReportRepository(db *sql.DB) *ReportRepository { return &ReportRepository{db: db} }

// Save insert/update report record
func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	const q = `
INSERT INTO lab_reports
(id, vendor, model, prompt_version, row_count, object_key, url, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
 object_key = EXCLUDED.object_key,
 url = EXCLUDED.url;`

	createdAt := rep.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q,
		string(rep.ID), stringOrDash(rep.Vendor), stringOrDash(rep.Model), stringOrDash(rep.PromptVersion),
		rep.RowCount, rep.ObjectKey, rep.URL, createdAt,
	)
	return err
}

func (r *ReportRepository) Get(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	const q = `
SELECT id, vendor, model, prompt_version, row_count, object_key, url, created_at
FROM lab_reports WHERE id = $1 LIMIT 1;`
	rep, err := scanReport(r.db.QueryRowContext(ctx, q, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rep, err
}

func (r *ReportRepository) Latest(ctx context.Context, limit int) ([]*domain.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	const q = `
SELECT id, vendor, model, prompt_version, row_count, object_key, url, created_at
FROM lab_reports ORDER BY created_at DESC, id DESC LIMIT $1;`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(s scanner) (*domain.Report, error) {
	var (
		rep domain.Report
		id  string
	)
	if err := s.Scan(&id, &rep.Vendor, &rep.Model, &rep.PromptVersion, &rep.RowCount, &rep.ObjectKey, &rep.URL, &rep.CreatedAt); err != nil {
		return nil, err
	}
	rep.ID = domain.ReportID(id)
	return &rep, nil
}

func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

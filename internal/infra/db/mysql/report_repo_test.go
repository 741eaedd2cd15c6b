package mysql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/labinterpreter/internal/domain/report"
)

var columns = []string{"id", "vendor", "model", "prompt_version", "row_count", "object_key", "url", "created_at"}

func TestSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO lab_reports")).
		WithArgs("r1", "gemini", "-", "v1", 2, "reports/2025/02/r1.txt", "http://x", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewReportRepository(db)
	err = repo.Save(context.Background(), &domain.Report{
		ID: "r1", Vendor: "gemini", PromptVersion: "v1", RowCount: 2,
		ObjectKey: "reports/2025/02/r1.txt", URL: "http://x", CreatedAt: at,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM lab_reports")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("r1", "openai", "gpt-4o-mini", "v1", 3, "k", "u", at))
	mock.ExpectQuery(regexp.QuoteMeta("FROM lab_reports")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	repo := NewReportRepository(db)
	rep, err := repo.Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, &domain.Report{ID: "r1", Vendor: "openai", Model: "gpt-4o-mini", PromptVersion: "v1", RowCount: 3, ObjectKey: "k", URL: "u", CreatedAt: at}, rep)

	_, err = repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("b", "gemini", "m", "v1", 1, "k2", "u2", at).
			AddRow("a", "gemini", "m", "v1", 1, "k1", "u1", at.Add(-time.Hour)))

	list, err := NewReportRepository(db).Latest(context.Background(), 5000)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.ReportID("b"), list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS lab_reports")).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

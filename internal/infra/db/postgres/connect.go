package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS lab_reports (
  id             VARCHAR(36)  PRIMARY KEY,
  vendor         VARCHAR(32)  NOT NULL,
  model          VARCHAR(128) NOT NULL,
  prompt_version VARCHAR(16)  NOT NULL,
  row_count      INTEGER      NOT NULL,
  object_key     VARCHAR(255) NOT NULL,
  url            TEXT         NOT NULL,
  created_at     TIMESTAMPTZ  NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lab_reports_created ON lab_reports (created_at DESC);`

// EnsureSchema creates the reports table when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

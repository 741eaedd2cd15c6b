package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	// test ping
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
  id             VARCHAR(36)  NOT NULL PRIMARY KEY,
  vendor         VARCHAR(32)  NOT NULL,
  model          VARCHAR(128) NOT NULL,
  prompt_version VARCHAR(16)  NOT NULL,
  row_count      INT          NOT NULL,
  object_key     VARCHAR(255) NOT NULL,
  url            TEXT         NOT NULL,
  created_at     DATETIME(6)  NOT NULL,
  INDEX idx_lab_reports_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

// EnsureSchema creates the reports table when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

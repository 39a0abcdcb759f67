package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS analysis_history (
  seq          BIGSERIAL PRIMARY KEY,
  id           TEXT        NOT NULL,
  title        TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL,
  score        DOUBLE PRECISION NOT NULL,
  url          TEXT,
  text_snippet TEXT,
  result_json  JSONB       NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_history_id ON analysis_history (id);`

// EnsureSchema creates the history table when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return errors.Wrap(err, "create analysis_history")
}

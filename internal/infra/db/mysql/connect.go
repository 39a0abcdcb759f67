package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// test ping
	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping mysql")
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS analysis_history (
  seq          BIGINT AUTO_INCREMENT PRIMARY KEY,
  id           VARCHAR(64)  NOT NULL,
  title        TEXT         NOT NULL,
  created_at   DATETIME(6)  NOT NULL,
  score        DOUBLE       NOT NULL,
  url          TEXT         NULL,
  text_snippet TEXT         NULL,
  result_json  JSON         NOT NULL,
  INDEX idx_analysis_history_id (id)
);`

// EnsureSchema creates the history table when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return errors.Wrap(err, "create analysis_history")
}

package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/bryanwahyu/credcheck/internal/domain/history"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

const selectColumns = `SELECT id, title, created_at, score, url, text_snippet, result_json FROM analysis_history`

// Save appends a record; seq keeps the insertion order.
func (r *HistoryRepository) Save(ctx context.Context, rec *history.Record) error {
	const q = `
INSERT INTO analysis_history
  (id, title, created_at, score, url, text_snippet, result_json)
VALUES (?,?,?,?,?,?,?);`

	raw, err := json.Marshal(rec.FullResult)
	if err != nil {
		return errors.Wrap(err, "encode result")
	}
	created := rec.Date
	if created.IsZero() {
		created = time.Now()
	}
	_, err = r.db.ExecContext(ctx, q,
		string(rec.ID), stringOrDash(rec.Title), created.UTC(), rec.Score,
		nullString(rec.URL), nullString(rec.TextSnippet), string(raw),
	)
	return err
}

// Recent returns the first n records by insertion order.
func (r *HistoryRepository) Recent(ctx context.Context, n int) ([]*history.Record, error) {
	if n <= 0 {
		n = history.DefaultRecentLimit
	}
	return r.list(ctx, selectColumns+` ORDER BY seq ASC LIMIT ?;`, n)
}

func (r *HistoryRepository) All(ctx context.Context) ([]*history.Record, error) {
	return r.list(ctx, selectColumns+` ORDER BY seq ASC;`)
}

func (r *HistoryRepository) Get(ctx context.Context, id string) (*history.Record, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id=? ORDER BY seq ASC LIMIT 1;`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, history.ErrNotFound
	}
	return rec, err
}

func (r *HistoryRepository) list(ctx context.Context, q string, args ...any) ([]*history.Record, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*history.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

package mysql

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/bryanwahyu/credcheck/internal/domain/analysis"
	"github.com/bryanwahyu/credcheck/internal/domain/history"
)

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*history.Record, error) {
	var (
		rec     history.Record
		id      string
		created time.Time
		url     sql.NullString
		snippet sql.NullString
		raw     []byte
	)
	if err := row.Scan(&id, &rec.Title, &created, &rec.Score, &url, &snippet, &raw); err != nil {
		return nil, err
	}
	rec.ID = analysis.ResultID(id)
	rec.Date = created
	rec.URL = stringPtr(url)
	rec.TextSnippet = stringPtr(snippet)

	var full analysis.Result
	if err := json.Unmarshal(raw, &full); err != nil {
		return nil, errors.Wrapf(err, "decode result_json of %s", id)
	}
	rec.FullResult = &full
	return &rec, nil
}

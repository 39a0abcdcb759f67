package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/credcheck/internal/application"
	domain "github.com/bryanwahyu/credcheck/internal/domain/analysis"
	"github.com/bryanwahyu/credcheck/internal/domain/history"
)

// Service implements the analysis use-cases.
// Safe for concurrent use as long as History is.
type Service struct {
	Records history.Repository
	// Archive is optional; a failed upload never fails the analysis.
	Archive     domain.ArchiveStore
	Clock       application.Clock
	RecentLimit int
	// NewID defaults to a random UUID.
	NewID func() string
}

// AnalyzeCommand is the raw request coming from the boundary layer.
type AnalyzeCommand struct {
	Content string
	Type    string
}

// Validate rejects blank content and unknown content types.
func (c AnalyzeCommand) Validate() (domain.ContentType, error) {
	if strings.TrimSpace(c.Content) == "" {
		return "", domain.ErrEmptyContent
	}
	return domain.ParseContentType(c.Type)
}

// Analyze scores the content, records it in the history and returns the full result.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*domain.Result, error) {
	ct, err := cmd.Validate()
	if err != nil {
		return nil, err
	}

	res := domain.Analyze(cmd.Content, ct, domain.ResultID(s.newID()), s.now())

	if err := s.Records.Save(ctx, history.NewRecord(res)); err != nil {
		return nil, fmt.Errorf("record analysis %s: %w", res.ID, err)
	}

	if s.Archive != nil {
		if key, err := s.Archive.Put(ctx, res); err != nil {
			zap.S().Warnw("archive analysis failed", "id", res.ID, "error", err)
		} else {
			zap.S().Debugw("analysis archived", "id", res.ID, "key", key)
		}
	}

	zap.S().Infow("analysis completed",
		"id", res.ID,
		"type", ct,
		"verdict", res.Verdict,
		"score", res.Score,
	)
	return res, nil
}

// Recent returns the first RecentLimit records in insertion order.
func (s *Service) Recent(ctx context.Context) ([]*history.Record, error) {
	n := s.RecentLimit
	if n <= 0 {
		n = history.DefaultRecentLimit
	}
	return s.Records.Recent(ctx, n)
}

// History returns every record passing f, insertion order preserved.
func (s *Service) History(ctx context.Context, f history.Filter) ([]*history.Record, error) {
	all, err := s.Records.All(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

// Get returns one record by id.
func (s *Service) Get(ctx context.Context, id string) (*history.Record, error) {
	return s.Records.Get(ctx, id)
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.New().String()
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return application.SystemClock{}.Now()
	}
	return s.Clock.Now()
}

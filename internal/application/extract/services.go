package extract

import (
	"context"

	"github.com/bryanwahyu/credcheck/internal/domain/article"
)

type Service struct {
	extractor article.Extractor
}

func NewService(extractor article.Extractor) *Service {
	return &Service{extractor: extractor}
}

func (s *Service) Extract(ctx context.Context, url string) (*article.Article, error) {
	return s.extractor.Extract(ctx, url)
}

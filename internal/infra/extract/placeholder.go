package extract

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bryanwahyu/credcheck/internal/domain/article"
)

// Placeholder is the article extractor used until real retrieval exists.
// It NEVER fetches anything: every call returns the same canned article
// flagged with Placeholder=true.
type Placeholder struct{}

func NewPlaceholder() *Placeholder { return &Placeholder{} }

func (Placeholder) Extract(ctx context.Context, rawURL string) (*article.Article, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, errors.Wrap(article.ErrFetch, "url is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(article.ErrFetch, "invalid url %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Wrapf(article.ErrFetch, "unsupported url scheme %q", u.Scheme)
	}

	zap.S().Infow("article extraction is not implemented, returning placeholder", "url", rawURL)
	return &article.Article{
		Text: fmt.Sprintf("This is a placeholder article text extracted from %s. In a real implementation, "+
			"this would contain the actual content of the article obtained by scraping the webpage.", rawURL),
		Title:       "Article Title Placeholder",
		Authors:     []string{"Author Name"},
		PublishDate: "2023-05-15",
		TopImage:    "https://example.com/image.jpg",
		URL:         rawURL,
		Placeholder: true,
	}, nil
}

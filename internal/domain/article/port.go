package article

import "context"

type Extractor interface {
	Extract(ctx context.Context, url string) (*Article, error)
}

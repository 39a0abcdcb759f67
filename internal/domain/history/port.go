package history

import "context"

// Repository port for the append-only analysis log.
//
// Recent returns the FIRST n records in insertion order, not the latest n.
// The listing clients depend on that ordering.
type Repository interface {
	Save(ctx context.Context, r *Record) error
	Recent(ctx context.Context, n int) ([]*Record, error)
	All(ctx context.Context) ([]*Record, error)
	Get(ctx context.Context, id string) (*Record, error)
}

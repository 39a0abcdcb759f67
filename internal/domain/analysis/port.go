package analysis

import "context"

// ArchiveStore port for keeping a copy of every result outside the process.
type ArchiveStore interface {
	Put(ctx context.Context, r *Result) (string, error)
}

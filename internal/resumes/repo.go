package resumes

import "context"

// Repo persists résumé records keyed by user ID. Store replaces the whole
// record; the last writer wins.
type Repo interface {
	Get(ctx context.Context, userID string) (Record, error)
	Store(ctx context.Context, userID string, rec Record) error
}

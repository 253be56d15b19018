package documents

import "context"

// Repo defines persistence operations for documents. Writes must be
// visible to subsequent reads on the same repo instance.
type Repo interface {
	// Create stores a new record. IDs are generated by the caller, so a
	// duplicate is a programming error, not a user-facing one.
	Create(ctx context.Context, doc Document) error
	// Get returns the record or ErrNotFound.
	Get(ctx context.Context, id string) (Document, error)
	// List returns records ordered by upload time descending, truncated
	// to limit.
	List(ctx context.Context, limit int) ([]Document, error)
	// Delete removes the record or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	// Finish applies the terminal processing outcome to the record.
	Finish(ctx context.Context, id string, out Outcome) error
}

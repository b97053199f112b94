package vectorstore

import "context"

// Store is the common interface for all vector database adapters.
//
// Lifecycle: a Store owns exactly one underlying session. EnsureSchema is safe
// to call repeatedly and under races. Close is idempotent; any operation after
// Close fails with ErrClosed — that is a usage error, never a retryable one.
//
//go:generate mockgen -source=interface.go -destination=mock_store.go -package=vectorstore
type Store interface {
	// EnsureSchema provisions the backing table/collection and its similarity
	// index if absent. Concurrent provisioning of the same table is tolerated:
	// "already exists" failures are swallowed, anything else is ErrSchema.
	EnsureSchema(ctx context.Context) error

	// Upsert inserts or replaces records by id. An error means no record
	// from the call was applied: adapters submit the whole call as one unit
	// (a transaction or a single write request) and never leave a partial
	// batch behind. A vector whose length differs from the configured
	// dimension fails with ErrValidation before any write.
	Upsert(ctx context.Context, records []Record) error

	// Search returns up to query.TopK results ordered descending by cosine
	// similarity, optionally restricted by query.Filters. An empty store
	// yields an empty slice, not an error.
	Search(ctx context.Context, query Query) ([]Result, error)

	// Delete removes the record with the given id. Deleting a missing id is
	// not an error.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	// Describe returns name, record count, and dimension of the collection.
	Describe(ctx context.Context) (*Collection, error)

	// Ping performs a lightweight liveness round-trip.
	Ping(ctx context.Context) error

	// Close releases the underlying session. The second and any further call
	// is a no-op.
	Close() error
}

package storage

import (
	"context"

	"github.com/poiesic/scout/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// SnapshotRepository provides operations for the content-addressed snapshot ledger.
type SnapshotRepository interface {
	Repository
	// PutSnapshot stores a snapshot record and its capture-time index entry.
	// Records are content addressed: rewriting an existing ID replaces an
	// identical record and is harmless.
	PutSnapshot(ctx context.Context, record *core.SnapshotRecord) error

	// GetSnapshot retrieves a single snapshot by ID.
	// Returns ErrNotFound if the snapshot doesn't exist.
	GetSnapshot(ctx context.Context, id core.ID) (*core.SnapshotRecord, error)

	// HasSnapshot reports whether a snapshot with the given ID exists.
	HasSnapshot(ctx context.Context, id core.ID) (bool, error)

	// DeleteSnapshots removes snapshots by their IDs.
	// Returns ErrNotFound if any snapshot doesn't exist.
	DeleteSnapshots(ctx context.Context, ids ...core.ID) error

	// ListSnapshots retrieves all snapshots ordered by capture time ascending.
	ListSnapshots(ctx context.Context) ([]*core.SnapshotRecord, error)
}

// CacheRepository persists semantic cache entries across restarts.
type CacheRepository interface {
	Repository
	// PutEntry stores a cache entry keyed by its key fingerprint, replacing
	// any previous entry for the same key.
	PutEntry(ctx context.Context, entry *core.CacheEntry) error

	// GetEntry retrieves a cache entry by its key.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, key core.CacheKey) (*core.CacheEntry, error)

	// DeleteEntries removes cache entries by their keys. Missing entries are
	// ignored since eviction and expiry race against rewrites.
	DeleteEntries(ctx context.Context, keys ...core.CacheKey) error

	// ListEntries retrieves all persisted cache entries in no particular order.
	ListEntries(ctx context.Context) ([]*core.CacheEntry, error)
}

package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

// CacheRepository implements storage.CacheRepository for BadgerDB.
type CacheRepository struct {
	backend *Backend
}

var _ storage.CacheRepository = (*CacheRepository)(nil)

// NewCacheRepository creates a new CacheRepository.
func NewCacheRepository(backend *Backend) (*CacheRepository, error) {
	return &CacheRepository{backend: backend}, nil
}

// Close releases repository resources. The shared backend stays open.
func (r *CacheRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *CacheRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutEntry stores a cache entry keyed by its key fingerprint.
func (r *CacheRepository) PutEntry(ctx context.Context, entry *core.CacheEntry) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCacheEntryKey(entry.Key.Fingerprint())
		if err := tx.Set(key, storage.MarshalCacheEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetEntry retrieves a cache entry by its key.
func (r *CacheRepository) GetEntry(ctx context.Context, key core.CacheKey) (*core.CacheEntry, error) {
	var result *core.CacheEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCacheEntryKey(key.Fingerprint()))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalCacheEntry(val)
			return err
		})
	}, false)
	return result, err
}

// DeleteEntries removes cache entries by their keys. Missing entries are ignored.
func (r *CacheRepository) DeleteEntries(ctx context.Context, keys ...core.CacheKey) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, key := range keys {
			if err := tx.Delete(makeCacheEntryKey(key.Fingerprint())); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ListEntries retrieves all persisted cache entries.
func (r *CacheRepository) ListEntries(ctx context.Context) ([]*core.CacheEntry, error) {
	var results []*core.CacheEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(cacheEntryPrefix + ":")

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.CacheEntry
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalCacheEntry(val)
				return err
			}); err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)
	return results, err
}

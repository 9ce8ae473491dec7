package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

// SnapshotRepository implements storage.SnapshotRepository for BadgerDB.
type SnapshotRepository struct {
	backend *Backend
}

var _ storage.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(backend *Backend) (*SnapshotRepository, error) {
	return &SnapshotRepository{backend: backend}, nil
}

// Close releases repository resources. The shared backend stays open.
func (r *SnapshotRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *SnapshotRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutSnapshot stores a snapshot record and its capture-time index entry.
func (r *SnapshotRepository) PutSnapshot(ctx context.Context, record *core.SnapshotRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if record.CapturedAt.IsZero() {
			record.CapturedAt = time.Now().UTC()
		}

		// Store primary record
		key := makeSnapshotKey(record.Id)
		value := storage.MarshalSnapshotRecord(record)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Update capture-time index
		capturedKey := makeSnapshotCapturedKey(record.CapturedAt, record.Id)
		if err := tx.Set(capturedKey, storage.MarshalID(record.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// GetSnapshot retrieves a single snapshot by ID.
func (r *SnapshotRepository) GetSnapshot(ctx context.Context, id core.ID) (*core.SnapshotRecord, error) {
	var result *core.SnapshotRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSnapshotKey(id)
		var err error
		result, err = r.readSnapshotRecord(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// HasSnapshot reports whether a snapshot with the given ID exists.
func (r *SnapshotRepository) HasSnapshot(ctx context.Context, id core.ID) (bool, error) {
	var found bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeSnapshotKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		found = true
		return nil
	}, false)
	return found, err
}

// DeleteSnapshots removes snapshots by their IDs.
func (r *SnapshotRepository) DeleteSnapshots(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeSnapshotKey(id)

			// Read record to get the capture time for index cleanup
			record, err := r.readSnapshotRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			// Delete from capture-time index
			capturedKey := makeSnapshotCapturedKey(record.CapturedAt, record.Id)
			if err := tx.Delete(capturedKey); err != nil {
				return err
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ListSnapshots retrieves all snapshots ordered by capture time ascending.
func (r *SnapshotRepository) ListSnapshots(ctx context.Context) ([]*core.SnapshotRecord, error) {
	var results []*core.SnapshotRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(snapshotCapturedPrefix + ":")

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			// Read the ID from the index
			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			record, err := r.readSnapshotRecord(tx, makeSnapshotKey(recordID))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// readSnapshotRecord reads a snapshot record by key within a transaction.
// Returns (nil, nil) if the record doesn't exist.
func (r *SnapshotRepository) readSnapshotRecord(tx *badger.Txn, key []byte) (*core.SnapshotRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.SnapshotRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalSnapshotRecord(val)
		return err
	})
	return record, err
}

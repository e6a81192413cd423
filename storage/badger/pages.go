package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/pagevault/core"
	"github.com/poiesic/pagevault/storage"
)

// PageRepository implements storage.PageRepository for BadgerDB.
type PageRepository struct {
	backend *Backend
}

var _ storage.PageRepository = (*PageRepository)(nil)

// NewPageRepository creates a new PageRepository.
func NewPageRepository(backend *Backend) (*PageRepository, error) {
	return &PageRepository{
		backend: backend,
	}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *PageRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *PageRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *PageRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// UpsertPageRecords inserts or replaces page records.
// IDs are derived from the (user, source page) tuple, so re-importing
// a page overwrites the earlier copy instead of duplicating it.
func (r *PageRepository) UpsertPageRecords(ctx context.Context, records ...*core.PageRecord) ([]*core.PageRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Micro precision matches what serialization persists, so the
		// stamped records equal what a later read returns.
		now := time.Now().UTC().Truncate(time.Microsecond)
		for _, record := range records {
			if record.Id == 0 {
				record.Id = core.PageRecordID(record.UserID, record.SourcePageID)
			}
			key := makePageRecordKey(record.Id)

			// Preserve InsertedAt when replacing an existing record
			old, err := r.readPageRecord(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				record.InsertedAt = old.InsertedAt
			} else {
				record.InsertedAt = now
			}
			record.UpdatedAt = now

			value := storage.MarshalPageRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update user index
			userKey := makePageUserKey(record.UserID, record.SourcePageID)
			if err := tx.Set(userKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// DeletePageRecords removes page records by their IDs.
func (r *PageRepository) DeletePageRecords(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makePageRecordKey(id)

			// Read record to get metadata for index cleanup
			record, err := r.readPageRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			userKey := makePageUserKey(record.UserID, record.SourcePageID)
			if err := tx.Delete(userKey); err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetPageRecord retrieves a single page record by ID.
func (r *PageRepository) GetPageRecord(ctx context.Context, id core.ID) (*core.PageRecord, error) {
	var result *core.PageRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makePageRecordKey(id)
		var err error
		result, err = r.readPageRecord(tx, key)
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

// GetPageRecords retrieves multiple page records by their IDs.
func (r *PageRepository) GetPageRecords(ctx context.Context, ids ...core.ID) ([]*core.PageRecord, error) {
	var result []*core.PageRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makePageRecordKey(id)
			record, err := r.readPageRecord(tx, key)
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetPageRecordsByUser retrieves all page records owned by a user,
// ordered by source page ID.
func (r *PageRepository) GetPageRecordsByUser(ctx context.Context, userID string) ([]*core.PageRecord, error) {
	var results []*core.PageRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialPageUserKey(userID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

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
			recordKey := makePageRecordKey(recordID)
			record, err := r.readPageRecord(tx, recordKey)
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

// CountPageRecordsByUser returns the number of page records owned by a user.
func (r *PageRepository) CountPageRecordsByUser(ctx context.Context, userID string) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialPageUserKey(userID)
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}
			count++
		}
		return nil
	}, false)
	return count, err
}

// readPageRecord reads a page record from the transaction.
func (r *PageRepository) readPageRecord(tx *badger.Txn, key []byte) (*core.PageRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.PageRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalPageRecord(val)
		return unmarshalErr
	})
	return record, err
}

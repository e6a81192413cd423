// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/pagevault/core"
	"github.com/poiesic/pagevault/storage"
)

// RunRepository implements storage.RunRepository for BadgerDB.
type RunRepository struct {
	backend *Backend
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository.
func NewRunRepository(backend *Backend) *RunRepository {
	return &RunRepository{
		backend: backend,
	}
}

// SaveRun stores or replaces an import run summary by its run ID.
func (r *RunRepository) SaveRun(ctx context.Context, summary *core.RunSummary) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRunKey(summary.RunID)
		value := storage.MarshalRunSummary(summary)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Update per-user index
		userKey := makeRunUserKey(summary.UserID, summary.StartedAt, summary.RunID)
		if err := tx.Set(userKey, []byte(summary.RunID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetRun retrieves an import run summary by run ID.
func (r *RunRepository) GetRun(ctx context.Context, runID string) (*core.RunSummary, error) {
	var summary *core.RunSummary
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRunKey(runID)
		item, err := tx.Get(key)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			summary, unmarshalErr = storage.UnmarshalRunSummary(val)
			return unmarshalErr
		})
	}, false)

	return summary, err
}

// GetRunsByUser retrieves persisted run summaries for a user,
// most recently started first.
func (r *RunRepository) GetRunsByUser(ctx context.Context, userID string) ([]*core.RunSummary, error) {
	var results []*core.RunSummary
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialRunUserKey(userID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			var runID string
			if err := iter.Item().Value(func(val []byte) error {
				runID = string(val)
				return nil
			}); err != nil {
				return err
			}

			item, err := tx.Get(makeRunKey(runID))
			if err != nil {
				if err == badger.ErrKeyNotFound {
					continue
				}
				return err
			}
			if err := item.Value(func(val []byte) error {
				summary, unmarshalErr := storage.UnmarshalRunSummary(val)
				if unmarshalErr != nil {
					return unmarshalErr
				}
				results = append(results, summary)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	}, false)

	return results, err
}

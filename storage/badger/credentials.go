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
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/pagevault/core"
	"github.com/poiesic/pagevault/storage"
)

// CredentialRepository implements storage.CredentialRepository for BadgerDB.
type CredentialRepository struct {
	backend *Backend
}

var _ storage.CredentialRepository = (*CredentialRepository)(nil)

// NewCredentialRepository creates a new CredentialRepository.
func NewCredentialRepository(backend *Backend) *CredentialRepository {
	return &CredentialRepository{
		backend: backend,
	}
}

// PutCredential stores or replaces the credential for a user.
func (r *CredentialRepository) PutCredential(ctx context.Context, userID string, credential *core.Credential) error {
	if credential.CreatedAt.IsZero() {
		credential.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCredentialKey(userID)
		value := storage.MarshalCredential(credential)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetCredential retrieves the credential for a user.
func (r *CredentialRepository) GetCredential(ctx context.Context, userID string) (*core.Credential, error) {
	var credential *core.Credential
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCredentialKey(userID)
		item, err := tx.Get(key)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			credential, unmarshalErr = storage.UnmarshalCredential(val)
			return unmarshalErr
		})
	}, false)

	return credential, err
}

// DeleteCredential removes the credential for a user.
func (r *CredentialRepository) DeleteCredential(ctx context.Context, userID string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCredentialKey(userID)
		if _, err := tx.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

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


package core

import (
	"fmt"
	"time"
)

// ValidatePageRecord validates a PageRecord according to domain rules.
//
// Validation rules:
//   - UserID must not be empty
//   - SourcePageID must not be empty
//   - Source must not be empty
//   - ImportedAt must not be in the future
//
// NOT validated:
//   - Contents (an empty page is valid data and produces an empty-text record)
//   - Vector (can be empty until the embedding stage runs)
//   - ID (derived deterministically from UserID and SourcePageID)
func ValidatePageRecord(record *PageRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidPageRecord)
	}

	if record.UserID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPageRecord, ErrEmptyUserID)
	}

	if record.SourcePageID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPageRecord, ErrEmptySourcePageID)
	}

	if record.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPageRecord, ErrEmptySource)
	}

	if !IsValidTimestamp(record.ImportedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidPageRecord, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateCredential validates a Credential according to domain rules.
func ValidateCredential(credential *Credential) error {
	if credential == nil {
		return fmt.Errorf("%w: credential is nil", ErrInvalidCredential)
	}

	if credential.AccessToken == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCredential, ErrEmptyAccessToken)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}

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

import "errors"

// Domain validation errors
var (
	// ErrInvalidPageRecord indicates a PageRecord failed validation.
	ErrInvalidPageRecord = errors.New("invalid page record")

	// ErrInvalidCredential indicates a Credential failed validation.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrEmptyUserID indicates the UserID field is empty.
	ErrEmptyUserID = errors.New("user id cannot be empty")

	// ErrEmptySourcePageID indicates the SourcePageID field is empty.
	ErrEmptySourcePageID = errors.New("source page id cannot be empty")

	// ErrEmptySource indicates the Source tag is empty.
	ErrEmptySource = errors.New("source tag cannot be empty")

	// ErrEmptyAccessToken indicates the AccessToken field is empty.
	ErrEmptyAccessToken = errors.New("access token cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)

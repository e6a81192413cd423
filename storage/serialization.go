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


package storage

import (
	"github.com/poiesic/pagevault/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalPageRecord serializes a PageRecord to bytes.
func MarshalPageRecord(record *core.PageRecord) []byte {
	buf := make([]byte, core.PageRecordMUS.Size(*record))
	core.PageRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalPageRecord deserializes a PageRecord from bytes.
func UnmarshalPageRecord(data []byte) (*core.PageRecord, error) {
	record, _, err := core.PageRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalCredential serializes a Credential to bytes.
func MarshalCredential(credential *core.Credential) []byte {
	buf := make([]byte, core.CredentialMUS.Size(*credential))
	core.CredentialMUS.Marshal(*credential, buf)
	return buf
}

// UnmarshalCredential deserializes a Credential from bytes.
func UnmarshalCredential(data []byte) (*core.Credential, error) {
	credential, _, err := core.CredentialMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &credential, nil
}

// MarshalRunSummary serializes a RunSummary to bytes.
func MarshalRunSummary(summary *core.RunSummary) []byte {
	buf := make([]byte, core.RunSummaryMUS.Size(*summary))
	core.RunSummaryMUS.Marshal(*summary, buf)
	return buf
}

// UnmarshalRunSummary deserializes a RunSummary from bytes.
func UnmarshalRunSummary(data []byte) (*core.RunSummary, error) {
	summary, _, err := core.RunSummaryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// SourceNotion is the source tag recorded on every page record imported
// from the Notion workspace API.
const SourceNotion = "notion"

// ID is a unique identifier for domain entities.
// It is generated by content-based hashing so that re-importing the same
// remote page for the same user always maps onto the same record.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// PageRecordID derives the record ID for a remote page owned by a user.
// The ID is stable across runs, which makes persistence an upsert: a
// re-import of the same page overwrites the prior record instead of
// appending a duplicate.
func PageRecordID(userID, sourcePageID string) ID {
	return IDFromContent(userID + ":" + sourcePageID)
}

// PageRecord is the normalized artifact produced for one remote page.
// It carries the extracted plain text and the embedding vector used for
// semantic similarity search.
type PageRecord struct {
	Id           ID
	UserID       string
	SourcePageID string
	Title        string
	Contents     string // Extracted plain text; empty is valid, an empty page is still data
	Source       string // Source tag, SourceNotion for workspace imports
	BlockCount   int
	Vector       []float32 // Embedding vector (populated before persistence)
	ImportedAt   time.Time // When the import run fetched the page
	InsertedAt   time.Time // When the record was inserted into the database
	UpdatedAt    time.Time // When the record was last updated
}

// Credential is an access token scoped to one user and one workspace.
// It is supplied externally and never mutated by the import pipeline.
type Credential struct {
	AccessToken string
	WorkspaceID string
	CreatedAt   time.Time
}

// RunState describes the lifecycle state of an import run.
type RunState int

const (
	// RunStateRunning indicates the run is still processing pages.
	RunStateRunning RunState = iota + 1
	// RunStateCompleted indicates the run processed its whole page stream.
	RunStateCompleted
	// RunStateFailed indicates the run aborted before processing any page.
	RunStateFailed
)

// RunFailure records one page that could not be processed, with a
// human-readable reason.
type RunFailure struct {
	PageID string
	Reason string
}

// RunSummary accumulates the outcome of one import run.
// It is mutated incrementally while the run is in flight and never
// mutated after the run finalizes.
type RunSummary struct {
	RunID      string
	UserID     string
	State      RunState
	Total      int
	Succeeded  int
	Failed     int
	Failures   []RunFailure
	StartedAt  time.Time
	FinishedAt time.Time
}

// Clone returns a deep copy of the summary.
// Status queries hand out clones so callers never observe in-flight mutation.
func (s *RunSummary) Clone() *RunSummary {
	if s == nil {
		return nil
	}
	out := *s
	out.Failures = make([]RunFailure, len(s.Failures))
	copy(out.Failures, s.Failures)
	return &out
}

// SearchResult represents a search result with the full record and relevance score.
type SearchResult struct {
	Record *PageRecord
	Score  float32
}

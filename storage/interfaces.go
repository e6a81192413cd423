package storage

import (
	"context"

	"github.com/poiesic/pagevault/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds page records similar to the given vector.
	// Returns records with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// PageRepository provides operations for managing imported page records.
type PageRepository interface {
	Repository
	// UpsertPageRecords inserts or replaces page records.
	// IDs are content-based (core.PageRecordID of user and source page),
	// so importing the same page twice overwrites the earlier copy.
	// Sets InsertedAt on first write and UpdatedAt on every write.
	// Returns the records with timestamps populated.
	UpsertPageRecords(ctx context.Context, records ...*core.PageRecord) ([]*core.PageRecord, error)

	// DeletePageRecords removes page records by their IDs.
	// Also removes associated user indices.
	// Returns ErrNotFound if any record doesn't exist.
	DeletePageRecords(ctx context.Context, ids ...core.ID) error

	// GetPageRecord retrieves a single page record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetPageRecord(ctx context.Context, id core.ID) (*core.PageRecord, error)

	// GetPageRecords retrieves multiple page records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetPageRecords(ctx context.Context, ids ...core.ID) ([]*core.PageRecord, error)

	// GetPageRecordsByUser retrieves all page records owned by a user,
	// ordered by source page ID.
	GetPageRecordsByUser(ctx context.Context, userID string) ([]*core.PageRecord, error)

	// CountPageRecordsByUser returns the number of page records owned by a user.
	CountPageRecordsByUser(ctx context.Context, userID string) (int, error)
}

// CredentialRepository provides operations for managing workspace credentials.
// Each user holds at most one credential per user ID.
type CredentialRepository interface {
	// PutCredential stores or replaces the credential for a user.
	PutCredential(ctx context.Context, userID string, credential *core.Credential) error

	// GetCredential retrieves the credential for a user.
	// Returns ErrNotFound if the user has no stored credential.
	GetCredential(ctx context.Context, userID string) (*core.Credential, error)

	// DeleteCredential removes the credential for a user.
	// Returns ErrNotFound if the user has no stored credential.
	DeleteCredential(ctx context.Context, userID string) error
}

// RunRepository provides operations for persisting finalized import runs.
// Active runs live in memory; only terminal summaries are written here.
type RunRepository interface {
	// SaveRun stores or replaces an import run summary by its run ID.
	SaveRun(ctx context.Context, summary *core.RunSummary) error

	// GetRun retrieves an import run summary by run ID.
	// Returns ErrNotFound if no run with that ID was persisted.
	GetRun(ctx context.Context, runID string) (*core.RunSummary, error)

	// GetRunsByUser retrieves persisted run summaries for a user,
	// most recently started first.
	GetRunsByUser(ctx context.Context, userID string) ([]*core.RunSummary, error)
}

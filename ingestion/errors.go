package ingestion

import "errors"

var (
	// ErrPageRepositoryRequired is returned when a page repository is not provided.
	ErrPageRepositoryRequired = errors.New("page repository required")

	// ErrCredentialRepositoryRequired is returned when a credential repository is not provided.
	ErrCredentialRepositoryRequired = errors.New("credential repository required")

	// ErrRunRepositoryRequired is returned when a run repository is not provided.
	ErrRunRepositoryRequired = errors.New("run repository required")

	// ErrImporterRequired is returned when an importer is not provided.
	ErrImporterRequired = errors.New("importer required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrNoCredential is returned when a user has no stored workspace credential.
	ErrNoCredential = errors.New("no workspace credential for user")

	// ErrRunNotFound is returned when no import run matches the given run ID.
	ErrRunNotFound = errors.New("import run not found")
)

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


package pagevault

import (
	"io"
	"log/slog"

	"github.com/poiesic/pagevault/ai"
	"github.com/poiesic/pagevault/ai/openai"
	"github.com/poiesic/pagevault/ingestion"
	"github.com/poiesic/pagevault/reembed"
	"github.com/poiesic/pagevault/search"
	"github.com/poiesic/pagevault/storage"
	"github.com/poiesic/pagevault/storage/badger"
)

// Vault bundles the storage backend, repositories, and AI provider
// behind one handle. It is the entry point for embedding applications.
type Vault struct {
	backend  *badger.Backend
	pageRepo storage.PageRepository
	credRepo storage.CredentialRepository
	runRepo  storage.RunRepository
	provider ai.Provider
	logger   *slog.Logger
}

// VaultOption configures a Vault.
type VaultOption func(*vaultOptions)

type vaultOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig overrides the embedding service configuration.
func WithAIConfig(config *ai.Config) VaultOption {
	return func(o *vaultOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

func NewVault(filePath string, opts ...VaultOption) (*Vault, error) {
	options := &vaultOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	pageRepo, err := badger.NewPageRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	credRepo := badger.NewCredentialRepository(backend)
	runRepo := badger.NewRunRepository(backend)

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		pageRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Vault{
		backend:  backend,
		pageRepo: pageRepo,
		credRepo: credRepo,
		runRepo:  runRepo,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

func (v *Vault) Close() error {
	if err := v.provider.Close(); err != nil {
		v.logger.Error("error closing AI provider", "err", err)
	}

	if err := v.pageRepo.Close(); err != nil {
		v.logger.Error("error closing page repository", "err", err)
		return err
	}

	if err := v.backend.Close(); err != nil {
		v.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (v *Vault) PageRepository() storage.PageRepository {
	return v.pageRepo
}

func (v *Vault) CredentialRepository() storage.CredentialRepository {
	return v.credRepo
}

func (v *Vault) RunRepository() storage.RunRepository {
	return v.runRepo
}

// NewImporter creates a workspace importer backed by this vault.
func (v *Vault) NewImporter(opts ...ingestion.ImporterOption) (*ingestion.Importer, error) {
	return ingestion.NewImporter(v.pageRepo, v.provider, opts...)
}

// NewCoordinator creates an import coordinator backed by this vault.
// Importer options configure the importer the coordinator runs.
func (v *Vault) NewCoordinator(importerOpts ...ingestion.ImporterOption) (*ingestion.Coordinator, error) {
	importer, err := v.NewImporter(importerOpts...)
	if err != nil {
		return nil, err
	}
	return ingestion.NewCoordinator(importer, v.credRepo, v.runRepo)
}

func (v *Vault) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(v.pageRepo, v.provider, opts...)
}

// NewReembedder creates a reembedder that writes progress to progress.
func (v *Vault) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(v.pageRepo, v.provider.Embedder(), config, progress)
}

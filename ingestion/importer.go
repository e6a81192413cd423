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


package ingestion

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/poiesic/pagevault/ai"
	"github.com/poiesic/pagevault/core"
	"github.com/poiesic/pagevault/extract"
	"github.com/poiesic/pagevault/notion"
	"github.com/poiesic/pagevault/storage"
)

// PageSource lists workspace pages and their block trees.
// notion.Client satisfies this interface; tests substitute fakes.
type PageSource interface {
	Pages(ctx context.Context) iter.Seq2[*notion.Page, error]
	PageBlocks(ctx context.Context, pageID string) ([]*notion.Block, error)
}

// SourceFactory creates a PageSource from a workspace access token.
type SourceFactory func(token string) (PageSource, error)

func defaultSourceFactory(token string) (PageSource, error) {
	return notion.NewClient(token)
}

// Importer walks a user's workspace and persists embedded page records.
type Importer struct {
	pageRepository storage.PageRepository
	embedder       ai.Embedder
	newSource      SourceFactory
	maxEmbedChars  int
	logger         *slog.Logger
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer) error

// WithSourceFactory overrides how workspace clients are constructed.
func WithSourceFactory(factory SourceFactory) ImporterOption {
	return func(i *Importer) error {
		if factory != nil {
			i.newSource = factory
		}
		return nil
	}
}

// WithMaxEmbedChars sets the character budget applied before embedding.
func WithMaxEmbedChars(chars int) ImporterOption {
	return func(i *Importer) error {
		if chars > 0 {
			i.maxEmbedChars = chars
		}
		return nil
	}
}

// WithImporterLogger sets a custom logger.
// Default is slog.Default().
func WithImporterLogger(logger *slog.Logger) ImporterOption {
	return func(i *Importer) error {
		if logger != nil {
			i.logger = logger
		}
		return nil
	}
}

// NewImporter creates a new workspace importer.
func NewImporter(pageRepository storage.PageRepository, provider ai.Provider, opts ...ImporterOption) (*Importer, error) {
	if pageRepository == nil {
		return nil, ErrPageRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	i := &Importer{
		pageRepository: pageRepository,
		embedder:       provider.Embedder(),
		newSource:      defaultSourceFactory,
		maxEmbedChars:  ai.DefaultMaxEmbedChars,
		logger:         slog.Default().With("component", "importer"),
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	return i, nil
}

// Run imports every page the credential can reach and returns the run
// summary. The credential is validated before any workspace request is
// made. A page that fails to fetch, extract, or embed is recorded as a
// failure and skipped; a failure in the page listing itself fails the
// whole run.
func (i *Importer) Run(ctx context.Context, userID string, credential *core.Credential) (*core.RunSummary, error) {
	summary := &core.RunSummary{
		UserID:    userID,
		State:     core.RunStateRunning,
		StartedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	fail := func(err error) (*core.RunSummary, error) {
		summary.State = core.RunStateFailed
		summary.FinishedAt = time.Now().UTC().Truncate(time.Microsecond)
		return summary, err
	}

	if userID == "" {
		return fail(core.ErrEmptyUserID)
	}
	if credential == nil {
		return fail(ErrNoCredential)
	}
	if err := core.ValidateCredential(credential); err != nil {
		return fail(err)
	}

	source, err := i.newSource(credential.AccessToken)
	if err != nil {
		return fail(err)
	}

	i.logger.Info("starting workspace import", "user", userID)

	for page, err := range source.Pages(ctx) {
		if err != nil {
			i.logger.Error("page listing failed", "user", userID, "err", err)
			return fail(err)
		}
		// Stop between pages when the run is cancelled, even if the
		// source ignores the context.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fail(ctxErr)
		}

		summary.Total++
		if importErr := i.importPage(ctx, source, userID, page); importErr != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, core.RunFailure{
				PageID: page.ID,
				Reason: importErr.Error(),
			})
			i.logger.Warn("page import failed, skipping",
				"user", userID, "page", page.ID, "err", importErr)
			continue
		}
		summary.Succeeded++
	}

	summary.State = core.RunStateCompleted
	summary.FinishedAt = time.Now().UTC().Truncate(time.Microsecond)

	i.logger.Info("workspace import finished",
		"user", userID,
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed)

	return summary, nil
}

// importPage fetches one page's block tree, extracts text, embeds it,
// and upserts the page record.
func (i *Importer) importPage(ctx context.Context, source PageSource, userID string, page *notion.Page) error {
	blocks, err := source.PageBlocks(ctx, page.ID)
	if err != nil {
		return err
	}

	text := extract.Text(blocks)

	record := &core.PageRecord{
		Id:           core.PageRecordID(userID, page.ID),
		UserID:       userID,
		SourcePageID: page.ID,
		Title:        page.Title,
		Contents:     text,
		Source:       core.SourceNotion,
		BlockCount:   len(blocks),
		ImportedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	// Pages with no extractable text are persisted without an embedding
	// so they still show up in listings.
	if text != "" {
		vector, err := i.embedder.EmbedText(ctx, ai.TruncateText(text, i.maxEmbedChars))
		if err != nil {
			return fmt.Errorf("embedding failed: %w", err)
		}
		record.Vector = vector
	}

	if _, err := i.pageRepository.UpsertPageRecords(ctx, record); err != nil {
		return fmt.Errorf("persisting page record: %w", err)
	}

	return nil
}

package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/pagevault/ai"
	"github.com/poiesic/pagevault/core"
	"github.com/poiesic/pagevault/storage"
)

// BatchProcessor handles embedding generation for batches of page records.
type BatchProcessor struct {
	repo           storage.PageRepository
	embedder       ai.Embedder
	maxEmbedChars  int
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxEmbedChars: character budget applied to each page before embedding
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.PageRepository, embedder ai.Embedder, maxEmbedChars, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	if maxEmbedChars <= 0 {
		maxEmbedChars = ai.DefaultMaxEmbedChars
	}
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxEmbedChars:  maxEmbedChars,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of records and updates them in
// the database. Pages without text keep their empty vector. Vectors are
// normalized after embedding for cosine similarity compatibility.
func (bp *BatchProcessor) Process(ctx context.Context, records []*core.PageRecord) error {
	if len(records) == 0 {
		return nil
	}

	// Pages with no extractable text have nothing to embed
	embeddable := make([]*core.PageRecord, 0, len(records))
	texts := make([]string, 0, len(records))
	for _, record := range records {
		if record.Contents == "" {
			continue
		}
		embeddable = append(embeddable, record)
		texts = append(texts, ai.TruncateText(record.Contents, bp.maxEmbedChars))
	}

	if len(embeddable) > 0 {
		var embeddings [][]float32
		err := RetryWithBackoff(ctx, func() error {
			var err error
			embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
			return err
		}, bp.maxRetries, bp.retryBaseDelay)

		if err != nil {
			return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
		}

		if len(embeddings) != len(embeddable) {
			return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(embeddable), len(embeddings))
		}

		for i := range embeddable {
			embeddable[i].Vector = NormalizeVector(embeddings[i])
		}
	}

	if _, err := bp.repo.UpsertPageRecords(ctx, records...); err != nil {
		return fmt.Errorf("failed to update records: %w", err)
	}

	return nil
}

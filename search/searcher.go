package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/poiesic/pagevault/ai"
	"github.com/poiesic/pagevault/core"
	"github.com/poiesic/pagevault/storage"
)

const (
	// minSimilarity is the cosine similarity floor for semantic matches.
	minSimilarity = 0.60

	// verbatimBoost is added when every query word appears in the page.
	verbatimBoost = 0.3

	// overfetchFactor widens the vector search so user filtering still
	// leaves enough candidates.
	overfetchFactor = 4
)

// Searcher provides semantic search over a user's imported pages.
type Searcher struct {
	pageRepository storage.PageRepository
	embedder       ai.Embedder
	logger         *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	pageRepository storage.PageRepository,
	provider ai.Provider,
	opts ...Option,
) (*Searcher, error) {
	if pageRepository == nil {
		return nil, ErrPageRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		pageRepository: pageRepository,
		embedder:       provider.Embedder(),
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindSimilar searches a user's pages for records similar to the query.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilar(ctx context.Context, userID, query string, maxHits int) ([]*core.SearchResult, error) {
	return s.FindSimilarWithMonitor(ctx, userID, query, maxHits, nil)
}

// FindSimilarWithMonitor searches with monitoring callbacks at each stage.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilarWithMonitor(ctx context.Context, userID, query string, maxHits int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	// Over-fetch: similarity search is global, user filtering follows
	matches, err := s.pageRepository.FindSimilar(ctx, embedding, minSimilarity, maxHits*overfetchFactor)
	if err != nil {
		s.logger.Error("error querying for similar records", "err", err)
		return nil, err
	}

	semanticIds := make([]uint64, 0, len(matches))
	for _, match := range matches {
		semanticIds = append(semanticIds, uint64(match.Record.Id))
	}
	monitor.AfterSemanticSearch(semanticIds)

	// Keep only this user's pages
	var records []*core.PageRecord
	scores := make(map[core.ID]float32, len(matches))
	for _, match := range matches {
		if match.Record.UserID != userID {
			continue
		}
		records = append(records, match.Record)
		scores[match.Record.Id] = match.Score
	}
	monitor.AfterUserFilter(records)

	results := make([]*core.SearchResult, 0, len(records))
	for _, record := range records {
		score := scores[record.Id]
		monitor.SemanticHit(record)

		// Verbatim match boost across title and body
		if containsAllQueryWords(query, record.Title, record.Contents) {
			score += verbatimBoost
			monitor.VerbatimBoost(record)
		}

		results = append(results, &core.SearchResult{
			Record: record,
			Score:  score,
		})
	}

	// Sort by score descending
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxHits {
		results = results[:maxHits]
	}
	monitor.Finish(results)

	return results, nil
}

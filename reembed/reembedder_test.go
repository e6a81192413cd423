package reembed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/pagevault/ai/mock"
	"github.com/poiesic/pagevault/core"
	"github.com/poiesic/pagevault/storage"
	"github.com/poiesic/pagevault/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.PageRepository {
	t.Helper()
	pageRepo, _, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { pageRepo.Close(); backend.Close() })
	return pageRepo
}

func seedPages(t *testing.T, repo storage.PageRepository, userID string, n int) {
	t.Helper()
	records := make([]*core.PageRecord, n)
	for i := range records {
		records[i] = &core.PageRecord{
			UserID:       userID,
			SourcePageID: fmt.Sprintf("page-%03d", i),
			Title:        fmt.Sprintf("Page %d", i),
			Contents:     fmt.Sprintf("contents of page %d", i),
			Source:       core.SourceNotion,
			Vector:       []float32{9, 9, 9}, // stale embedding
			ImportedAt:   time.Now().UTC(),
		}
	}
	_, err := repo.UpsertPageRecords(context.Background(), records...)
	require.NoError(t, err)
}

func TestReembedder_Run(t *testing.T) {
	repo := newTestRepo(t)
	seedPages(t, repo, "user-1", 7)

	var out bytes.Buffer
	config := &Config{BatchSize: 3, ReportInterval: 1, MaxRetries: 2, RetryDelay: time.Millisecond}
	reembedder := NewReembedder(repo, mock.NewMockEmbedder(), config, &out)

	err := reembedder.Run(context.Background(), "user-1")
	require.NoError(t, err)

	// Every record got a fresh normalized embedding
	records, err := repo.GetPageRecordsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, records, 7)
	for _, record := range records {
		assert.NotEqual(t, []float32{9, 9, 9}, record.Vector)
		assert.InDelta(t, 1.0, magnitude(record.Vector), 0.001)
	}

	assert.Contains(t, out.String(), "Reembedding complete")
}

func TestReembedder_Run_NoRecords(t *testing.T) {
	repo := newTestRepo(t)

	var out bytes.Buffer
	reembedder := NewReembedder(repo, mock.NewMockEmbedder(), nil, &out)

	err := reembedder.Run(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No pages found")
}

func TestReembedder_Run_ScopedToUser(t *testing.T) {
	repo := newTestRepo(t)
	seedPages(t, repo, "user-1", 2)
	seedPages(t, repo, "user-2", 2)

	var out bytes.Buffer
	reembedder := NewReembedder(repo, mock.NewMockEmbedder(), nil, &out)

	require.NoError(t, reembedder.Run(context.Background(), "user-1"))

	// user-2's records keep their stale vectors
	others, err := repo.GetPageRecordsByUser(context.Background(), "user-2")
	require.NoError(t, err)
	for _, record := range others {
		assert.Equal(t, []float32{9, 9, 9}, record.Vector)
	}
}

func TestBatchProcessor_SkipsEmptyPages(t *testing.T) {
	repo := newTestRepo(t)

	empty := &core.PageRecord{
		UserID:       "user-1",
		SourcePageID: "page-empty",
		Title:        "Empty",
		Source:       core.SourceNotion,
		ImportedAt:   time.Now().UTC(),
	}
	full := &core.PageRecord{
		UserID:       "user-1",
		SourcePageID: "page-full",
		Title:        "Full",
		Contents:     "some text",
		Source:       core.SourceNotion,
		ImportedAt:   time.Now().UTC(),
	}
	_, err := repo.UpsertPageRecords(context.Background(), empty, full)
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	var embeddedTexts []string
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		embeddedTexts = texts
		out := make([][]float32, len(texts))
		for i := range out {
			out[i] = []float32{1, 0}
		}
		return out, nil
	}

	processor := NewBatchProcessor(repo, embedder, 0, 1, time.Millisecond)
	err = processor.Process(context.Background(), []*core.PageRecord{empty, full})
	require.NoError(t, err)

	assert.Equal(t, []string{"some text"}, embeddedTexts)

	stored, err := repo.GetPageRecord(context.Background(), core.PageRecordID("user-1", "page-empty"))
	require.NoError(t, err)
	assert.Empty(t, stored.Vector)
}

func TestBatchProcessor_TruncatesLongPages(t *testing.T) {
	repo := newTestRepo(t)

	long := &core.PageRecord{
		UserID:       "user-1",
		SourcePageID: "page-long",
		Title:        "Long",
		Contents:     string(bytes.Repeat([]byte{'x'}, 100)),
		Source:       core.SourceNotion,
		ImportedAt:   time.Now().UTC(),
	}
	_, err := repo.UpsertPageRecords(context.Background(), long)
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	var embeddedTexts []string
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		embeddedTexts = texts
		return [][]float32{{1, 0}}, nil
	}

	processor := NewBatchProcessor(repo, embedder, 40, 1, time.Millisecond)
	require.NoError(t, processor.Process(context.Background(), []*core.PageRecord{long}))

	require.Len(t, embeddedTexts, 1)
	assert.Len(t, embeddedTexts[0], 40)
}

func TestBatchProcessor_RetriesThenFails(t *testing.T) {
	repo := newTestRepo(t)
	seedPages(t, repo, "user-1", 1)

	records, err := repo.GetPageRecordsByUser(context.Background(), "user-1")
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	calls := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		return nil, errors.New("embedding service down")
	}

	processor := NewBatchProcessor(repo, embedder, 0, 3, time.Millisecond)
	err = processor.Process(context.Background(), records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, calls)
}

func TestRecordIterator_Batches(t *testing.T) {
	repo := newTestRepo(t)
	seedPages(t, repo, "user-1", 10)

	iterator := NewRecordIterator(repo, 4)

	var batchSizes []int
	err := iterator.ForEach(context.Background(), "user-1", func(records []*core.PageRecord) error {
		batchSizes = append(batchSizes, len(records))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4, 2}, batchSizes)
}

func TestRecordIterator_EmptyUser(t *testing.T) {
	repo := newTestRepo(t)
	iterator := NewRecordIterator(repo, 4)

	err := iterator.ForEach(context.Background(), "", func([]*core.PageRecord) error { return nil })
	assert.ErrorIs(t, err, ErrEmptyUserID)

	called := false
	err = iterator.ForEach(context.Background(), "user-none", func([]*core.PageRecord) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestRecordIterator_StopsOnError(t *testing.T) {
	repo := newTestRepo(t)
	seedPages(t, repo, "user-1", 10)

	iterator := NewRecordIterator(repo, 4)

	wantErr := errors.New("stop")
	calls := 0
	err := iterator.ForEach(context.Background(), "user-1", func([]*core.PageRecord) error {
		calls++
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

package ingestion

import (
	"context"
	"iter"
	"testing"
	"time"

	"github.com/poiesic/pagevault/ai/mock"
	"github.com/poiesic/pagevault/core"
	"github.com/poiesic/pagevault/notion"
	"github.com/poiesic/pagevault/storage"
	"github.com/poiesic/pagevault/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator(t *testing.T, source PageSource) (*Coordinator, storage.CredentialRepository, storage.RunRepository) {
	t.Helper()

	pageRepo, credRepo, runRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { pageRepo.Close(); backend.Close() })

	importer, err := NewImporter(pageRepo, mock.NewMockProvider(),
		WithSourceFactory(func(token string) (PageSource, error) { return source, nil }))
	require.NoError(t, err)

	coordinator, err := NewCoordinator(importer, credRepo, runRepo)
	require.NoError(t, err)
	t.Cleanup(coordinator.Release)

	return coordinator, credRepo, runRepo
}

// waitForRun polls until the run leaves the running state.
func waitForRun(t *testing.T, c *Coordinator, runID string) *core.RunSummary {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		summary, err := c.ImportStatus(context.Background(), runID)
		require.NoError(t, err)
		if summary.State != core.RunStateRunning {
			return summary
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("run did not finish in time")
	return nil
}

func TestCoordinator_StartImport_NoCredential(t *testing.T) {
	coordinator, _, _ := newTestCoordinator(t, workspace(1))

	_, err := coordinator.StartImport(context.Background(), "user-1", nil)
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestCoordinator_StartImport_EmptyUser(t *testing.T) {
	coordinator, _, _ := newTestCoordinator(t, workspace(1))

	_, err := coordinator.StartImport(context.Background(), "", nil)
	assert.ErrorIs(t, err, core.ErrEmptyUserID)
}

func TestCoordinator_StartImport_SuppliedCredential(t *testing.T) {
	coordinator, _, _ := newTestCoordinator(t, workspace(2))
	ctx := context.Background()

	// No stored credential; the supplied one drives the run.
	runID, err := coordinator.StartImport(ctx, "user-1", &core.Credential{AccessToken: "tok"})
	require.NoError(t, err)

	summary := waitForRun(t, coordinator, runID)
	assert.Equal(t, core.RunStateCompleted, summary.State)
	assert.Equal(t, 2, summary.Succeeded)
}

// gatedSource yields its first page immediately and holds the second
// until released, so tests can intervene mid-run.
type gatedSource struct {
	fakeSource
	release chan struct{}
}

func (g *gatedSource) Pages(ctx context.Context) iter.Seq2[*notion.Page, error] {
	return func(yield func(*notion.Page, error) bool) {
		for i, page := range g.pages {
			if i == 1 {
				<-g.release
			}
			if !yield(page, nil) {
				return
			}
		}
	}
}

func TestCoordinator_CancelImport(t *testing.T) {
	base := workspace(3)
	source := &gatedSource{release: make(chan struct{})}
	source.pages = base.pages
	source.blocks = base.blocks

	coordinator, credRepo, _ := newTestCoordinator(t, source)
	ctx := context.Background()

	require.NoError(t, credRepo.PutCredential(ctx, "user-1", &core.Credential{AccessToken: "tok"}))

	runID, err := coordinator.StartImport(ctx, "user-1", nil)
	require.NoError(t, err)

	// Let the first page finish before cancelling.
	deadline := time.Now().Add(5 * time.Second)
	for source.blockCalls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.GreaterOrEqual(t, source.blockCalls.Load(), int32(1))

	require.NoError(t, coordinator.CancelImport(runID))
	close(source.release)

	summary := waitForRun(t, coordinator, runID)
	assert.Equal(t, core.RunStateFailed, summary.State)
	assert.Equal(t, 1, summary.Succeeded)

	// A finalized run can no longer be cancelled.
	assert.ErrorIs(t, coordinator.CancelImport(runID), ErrRunNotFound)
}

func TestCoordinator_CancelImport_UnknownRun(t *testing.T) {
	coordinator, _, _ := newTestCoordinator(t, workspace(1))

	assert.ErrorIs(t, coordinator.CancelImport("no-such-run"), ErrRunNotFound)
}

func TestCoordinator_RunLifecycle(t *testing.T) {
	coordinator, credRepo, runRepo := newTestCoordinator(t, workspace(3))
	ctx := context.Background()

	err := credRepo.PutCredential(ctx, "user-1", &core.Credential{AccessToken: "tok"})
	require.NoError(t, err)

	runID, err := coordinator.StartImport(ctx, "user-1", nil)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	summary := waitForRun(t, coordinator, runID)
	assert.Equal(t, core.RunStateCompleted, summary.State)
	assert.Equal(t, runID, summary.RunID)
	assert.Equal(t, "user-1", summary.UserID)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)

	// Finalized summary is persisted
	persisted, err := runRepo.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, core.RunStateCompleted, persisted.State)
	assert.Equal(t, 3, persisted.Succeeded)
}

func TestCoordinator_RunWithFailures(t *testing.T) {
	source := workspace(4)
	source.blocksErrOn = "page-2"
	coordinator, credRepo, _ := newTestCoordinator(t, source)
	ctx := context.Background()

	require.NoError(t, credRepo.PutCredential(ctx, "user-1", &core.Credential{AccessToken: "tok"}))

	runID, err := coordinator.StartImport(ctx, "user-1", nil)
	require.NoError(t, err)

	summary := waitForRun(t, coordinator, runID)
	assert.Equal(t, core.RunStateCompleted, summary.State)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, "page-2", summary.Failures[0].PageID)
}

func TestCoordinator_StatusSnapshotIsIsolated(t *testing.T) {
	coordinator, credRepo, _ := newTestCoordinator(t, workspace(2))
	ctx := context.Background()

	require.NoError(t, credRepo.PutCredential(ctx, "user-1", &core.Credential{AccessToken: "tok"}))

	runID, err := coordinator.StartImport(ctx, "user-1", nil)
	require.NoError(t, err)
	summary := waitForRun(t, coordinator, runID)

	// Mutating the snapshot must not affect later reads
	summary.Succeeded = 999
	again, err := coordinator.ImportStatus(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Succeeded)
}

func TestCoordinator_ImportStatus_UnknownRun(t *testing.T) {
	coordinator, _, _ := newTestCoordinator(t, workspace(1))

	_, err := coordinator.ImportStatus(context.Background(), "no-such-run")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestCoordinator_ConcurrentRunsForDifferentUsers(t *testing.T) {
	coordinator, credRepo, _ := newTestCoordinator(t, workspace(2))
	ctx := context.Background()

	require.NoError(t, credRepo.PutCredential(ctx, "user-1", &core.Credential{AccessToken: "tok1"}))
	require.NoError(t, credRepo.PutCredential(ctx, "user-2", &core.Credential{AccessToken: "tok2"}))

	runA, err := coordinator.StartImport(ctx, "user-1", nil)
	require.NoError(t, err)
	runB, err := coordinator.StartImport(ctx, "user-2", nil)
	require.NoError(t, err)
	require.NotEqual(t, runA, runB)

	summaryA := waitForRun(t, coordinator, runA)
	summaryB := waitForRun(t, coordinator, runB)
	assert.Equal(t, "user-1", summaryA.UserID)
	assert.Equal(t, "user-2", summaryB.UserID)
	assert.Equal(t, 2, summaryA.Succeeded)
	assert.Equal(t, 2, summaryB.Succeeded)
}

func TestNewCoordinator_Validation(t *testing.T) {
	pageRepo, credRepo, runRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { pageRepo.Close(); backend.Close() })

	importer, err := NewImporter(pageRepo, mock.NewMockProvider())
	require.NoError(t, err)

	_, err = NewCoordinator(nil, credRepo, runRepo)
	assert.ErrorIs(t, err, ErrImporterRequired)

	_, err = NewCoordinator(importer, nil, runRepo)
	assert.ErrorIs(t, err, ErrCredentialRepositoryRequired)

	_, err = NewCoordinator(importer, credRepo, nil)
	assert.ErrorIs(t, err, ErrRunRepositoryRequired)

	coordinator, err := NewCoordinator(importer, credRepo, runRepo, WithPoolSize(2))
	require.NoError(t, err)
	coordinator.Release()
}

package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("some content")
		id2 := IDFromContent("some content")
		assert.Equal(t, id1, id2)
	})

	t.Run("different content produces different IDs", func(t *testing.T) {
		id1 := IDFromContent("content A")
		id2 := IDFromContent("content B")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content produces valid ID", func(t *testing.T) {
		id := IDFromContent("")
		assert.Equal(t, id, IDFromContent(""))
	})
}

func TestPageRecordID(t *testing.T) {
	t.Run("stable across runs", func(t *testing.T) {
		id1 := PageRecordID("user-1", "page-abc")
		id2 := PageRecordID("user-1", "page-abc")
		assert.Equal(t, id1, id2)
	})

	t.Run("scoped per user", func(t *testing.T) {
		id1 := PageRecordID("user-1", "page-abc")
		id2 := PageRecordID("user-2", "page-abc")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("scoped per page", func(t *testing.T) {
		id1 := PageRecordID("user-1", "page-abc")
		id2 := PageRecordID("user-1", "page-def")
		assert.NotEqual(t, id1, id2)
	})
}

func TestRunSummary_Clone(t *testing.T) {
	t.Run("deep copies failures", func(t *testing.T) {
		summary := &RunSummary{
			RunID:     "run-1",
			UserID:    "user-1",
			State:     RunStateRunning,
			Total:     3,
			Succeeded: 2,
			Failed:    1,
			Failures:  []RunFailure{{PageID: "page-1", Reason: "embed failed"}},
			StartedAt: time.Now().UTC(),
		}

		clone := summary.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, summary.RunID, clone.RunID)
		assert.Equal(t, summary.Failures, clone.Failures)

		// Mutating the original must not leak into the clone
		summary.Failures[0].Reason = "changed"
		summary.Succeeded = 99
		assert.Equal(t, "embed failed", clone.Failures[0].Reason)
		assert.Equal(t, 2, clone.Succeeded)
	})

	t.Run("nil summary clones to nil", func(t *testing.T) {
		var summary *RunSummary
		assert.Nil(t, summary.Clone())
	})
}

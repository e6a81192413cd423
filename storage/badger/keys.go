package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/pagevault/core"
)

// Key prefixes for different data types
const (
	pageRecordPrefix     = "pagrec"
	pageRecordUserPrefix = "pagrecu"
	credentialPrefix     = "credrec"
	runRecordPrefix      = "runrec"
	runRecordUserPrefix  = "runrecu"
)

// makePageRecordKey generates a key for a page record by ID.
func makePageRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", pageRecordPrefix, id))
}

// makePageUserKey generates a composite key for the user index.
// Format: prefix:userID:sourcePageID
// Records for one user sort by source page ID.
func makePageUserKey(userID, sourcePageID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", pageRecordUserPrefix, userID, sourcePageID))
}

// makePartialPageUserKey generates a partial key for per-user scans.
// Format: prefix:userID:
func makePartialPageUserKey(userID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", pageRecordUserPrefix, userID))
}

// makeCredentialKey generates a key for a user's workspace credential.
func makeCredentialKey(userID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", credentialPrefix, userID))
}

// makeRunKey generates a key for an import run summary by run ID.
func makeRunKey(runID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", runRecordPrefix, runID))
}

// makeRunUserKey generates a composite key for the per-user run index.
// Format: prefix:userID:invertedStartTime:runID
// The start time is bit-inverted so forward iteration yields newest first.
func makeRunUserKey(userID string, startedAt time.Time, runID string) []byte {
	prefix := []byte(fmt.Sprintf("%s:%s:", runRecordUserPrefix, userID))
	buf := make([]byte, len(prefix)+8+len(runID))
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], ^uint64(startedAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], runID)
	return buf
}

// makePartialRunUserKey generates a partial key for per-user run scans.
// Format: prefix:userID:
func makePartialRunUserKey(userID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", runRecordUserPrefix, userID))
}

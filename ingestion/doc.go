// Package ingestion provides the workspace import pipeline.
//
// The Importer type walks a user's connected workspace, extracts plain
// text from each page's block tree, generates embeddings, and persists
// page records. Failures are isolated per page: one bad page is recorded
// and skipped, and the run continues with the rest.
//
// The Coordinator type manages import runs. Runs execute asynchronously
// on a worker pool; callers receive a run ID immediately and poll for
// status. Finalized run summaries are persisted for later inspection.
package ingestion

// Package reembed provides functionality for reembedding imported page
// records with new or updated embedding models.
//
// This package supports batch processing of page records, progress tracking,
// retry logic with exponential backoff, and vector normalization to ensure
// compatibility with cosine similarity search.
package reembed

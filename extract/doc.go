// Package extract converts a page's block tree into one normalized plain
// text blob.
//
// Extraction is a pure function over the flattened, depth-first block
// sequence: same input, same output, no network access. Block types that
// carry no text and types the rule table does not know are skipped
// silently; extraction degrades on malformed input and never fails.
package extract

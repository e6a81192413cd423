// Package notion provides a minimal client for the Notion workspace API.
//
// The client covers the two read paths the import pipeline needs:
//   - listing every page shared with the integration token, following
//     cursor pagination lazily (Client.Pages)
//   - fetching a page's full block tree, following the has_children flag
//     and child-listing cursors without recursion (Client.PageBlocks)
//
// Every outbound call passes through a RateLimiter so the published API
// ceiling (3 requests per second) is never exceeded, and transient
// failures are retried with bounded exponential backoff.
package notion

package search

import "github.com/poiesic/pagevault/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterSemanticSearch(ids []uint64)
	AfterUserFilter(records []*core.PageRecord)
	SemanticHit(record *core.PageRecord)
	VerbatimBoost(record *core.PageRecord)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                        {}
func (n *noopMonitor) AfterSemanticSearch(_ []uint64)        {}
func (n *noopMonitor) AfterUserFilter(_ []*core.PageRecord)  {}
func (n *noopMonitor) SemanticHit(_ *core.PageRecord)        {}
func (n *noopMonitor) VerbatimBoost(_ *core.PageRecord)      {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)         {}

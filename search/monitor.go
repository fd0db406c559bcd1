package search

import (
	"github.com/poiesic/toolshelf/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterIntentExtraction(intent *core.SearchIntent, usedFallback bool)
	Finish(results []*core.ScoredResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                     {}
func (n *noopMonitor) AfterIntentExtraction(_ *core.SearchIntent, _ bool) {}
func (n *noopMonitor) Finish(_ []*core.ScoredResult)                      {}

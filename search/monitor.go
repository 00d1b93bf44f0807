package search

import "github.com/deeptechhq/expertmatch/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during
// search. Slice arguments are snapshots owned by the monitor; mutating them
// does not affect the search in flight.
type SearchMonitor interface {
	Start(query string)
	AfterQueryEmbedding(dimensions int)
	AfterCandidateRetrieval(candidates []*core.ExpertProfile)
	AfterFiltering(candidates []*core.ExpertProfile)
	Finish(matches []*core.Match)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                   {}
func (n *noopMonitor) AfterQueryEmbedding(_ int)                        {}
func (n *noopMonitor) AfterCandidateRetrieval(_ []*core.ExpertProfile)  {}
func (n *noopMonitor) AfterFiltering(_ []*core.ExpertProfile)           {}
func (n *noopMonitor) Finish(_ []*core.Match)                           {}

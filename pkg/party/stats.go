package party

import (
	"fmt"
	"time"
)

// Stats aggregates search effort across every host-count level and
// candidate host set of one solve.
type Stats struct {
	// Nodes is the number of branching decisions taken.
	Nodes int64
	// Backtracks is the number of times the search unwound a choice point.
	Backtracks int64
	// Propagations is the number of constraint revisions performed.
	Propagations int64
	// Candidates is the number of host sets searched.
	Candidates int
	// LevelsProven is the number of host counts proven infeasible.
	LevelsProven int
	// MaxDepth is the deepest choice-point stack reached.
	MaxDepth int
	// Elapsed is wall-clock solve time.
	Elapsed time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes=%d backtracks=%d propagations=%d candidates=%d levels=%d depth=%d elapsed=%s",
		s.Nodes, s.Backtracks, s.Propagations, s.Candidates, s.LevelsProven, s.MaxDepth, s.Elapsed)
}

package party

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInstance reports a structural invariant violated by the
	// input: capacity below crew size, a duplicate identifier, a
	// non-positive period count. It is fatal and surfaces before any
	// search is attempted.
	ErrMalformedInstance = errors.New("malformed instance")

	// ErrInfeasible reports that exhaustive search found no feasible
	// schedule. It is a normal outcome, not an internal failure.
	ErrInfeasible = errors.New("no feasible schedule")

	// ErrSearchCancelled reports a feasibility search stopped before
	// exhausting its tree, either because a sibling candidate already
	// succeeded or because an external budget expired. The optimizer
	// consumes it internally; callers only see it through a *BudgetError.
	ErrSearchCancelled = errors.New("search cancelled")

	// ErrSearchLimitReached indicates a solve terminated because the
	// configured node limit ran out before feasibility was decided.
	ErrSearchLimitReached = errors.New("search limit reached")
)

// BudgetError reports a solve truncated by an external budget (context
// deadline or cancellation, or a node limit) before reaching a verdict.
// Proven is the largest host count k such that every host set of size k or
// below was refuted; sizes beyond it remain unresolved.
type BudgetError struct {
	Proven int
	Cause  error
}

func (e *BudgetError) Error() string {
	if e.Proven < 1 {
		return fmt.Sprintf("search budget exhausted before any host count was decided (%v)", e.Cause)
	}
	return fmt.Sprintf("search budget exhausted: infeasible for host counts 1..%d, unresolved beyond (%v)", e.Proven, e.Cause)
}

// Unwrap exposes both the cancellation sentinel and the budget cause, so
// errors.Is matches ErrSearchCancelled as well as context.DeadlineExceeded,
// context.Canceled, or ErrSearchLimitReached.
func (e *BudgetError) Unwrap() []error { return []error{ErrSearchCancelled, e.Cause} }

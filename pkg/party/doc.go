// Package party solves the progressive party problem: a fleet of boats,
// each with a fixed crew and a passenger capacity, holds a rotating party
// over a fixed number of periods. Some boats are designated hosts and stay
// put; every other boat is a guest whose whole crew visits one host boat
// per period. A schedule is feasible when no boat is ever over capacity
// (its own crew plus every visiting crew), no guest visits the same host
// twice, and no two guest crews meet at a host in more than one period.
//
// The solver minimizes the number of hosts. Solve tries host counts in
// increasing order; for each count it enumerates candidate host sets up to
// boat interchangeability and runs an exact feasibility search per
// candidate: finite domains over host positions, incremental propagation
// with a reversible trail, and iterative backtracking with a
// most-constrained-first variable order. The first feasible count is
// therefore provably minimal, and exhausting every count proves the
// instance infeasible.
//
// Typical usage:
//
//	inst, err := party.NewInstance(boats, periods)
//	if err != nil {
//		// structural problem in the input
//	}
//	res, err := party.Solve(ctx, inst, party.WithWorkers(4))
//	switch {
//	case errors.Is(err, party.ErrInfeasible):
//		// no host set of any size works
//	case err != nil:
//		// budget exhausted or internal failure
//	default:
//		fmt.Print(res)
//	}
//
// Candidate host sets within one count are independent, so they may be
// searched concurrently (WithWorkers); the first success cancels the rest
// cooperatively. An external wall-clock or node budget truncates the solve
// with a *BudgetError that reports how far infeasibility was proven.
package party

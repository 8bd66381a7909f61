package party

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveMinimalHostCount(t *testing.T) {
	inst, err := NewInstance(uniformFleet(4, 2, 4), 1)
	require.NoError(t, err)

	res, err := Solve(context.Background(), inst)
	require.NoError(t, err)
	require.NotNil(t, res)

	// One host seats 4 of 8 crew, so two hosts are needed and suffice.
	assert.Equal(t, 2, res.HostCount)
	assert.Equal(t, []int{0, 1}, res.Hosts)
	require.NoError(t, Verify(inst, res))

	assert.Equal(t, 1, res.Stats.LevelsProven)
	assert.Equal(t, 1, res.Stats.Candidates)
	assert.Equal(t, int64(1), res.Stats.Nodes)
	assert.Equal(t, int64(0), res.Stats.Backtracks)
	assert.Equal(t, 1, res.Stats.MaxDepth)
	assert.Positive(t, res.Stats.Elapsed)
}

func TestSolveSingleBoatHostsItself(t *testing.T) {
	inst, err := NewInstance([]Boat{{ID: 3, Crew: 5, Capacity: 5}}, 4)
	require.NoError(t, err)

	res, err := Solve(context.Background(), inst)
	require.NoError(t, err)
	assert.Equal(t, 1, res.HostCount)
	assert.Equal(t, []int{3}, res.Hosts)
	assert.Empty(t, res.Itineraries)
	assert.NoError(t, Verify(inst, res))
}

func TestSolveInfeasibleByCapacity(t *testing.T) {
	// Two zero-spare boats: neither can host the other.
	inst, err := NewInstance(uniformFleet(2, 3, 3), 1)
	require.NoError(t, err)

	_, err = Solve(context.Background(), inst)
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSolveInfeasibleByPeriods(t *testing.T) {
	// Five pairwise distinct hosts cannot come out of two.
	inst, err := NewInstance(uniformFleet(3, 2, 20), 5)
	require.NoError(t, err)

	_, err = Solve(context.Background(), inst)
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSolveNilInstance(t *testing.T) {
	_, err := Solve(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMalformedInstance)
}

func TestSolveSequentialAndParallelAgree(t *testing.T) {
	// Two hosts fail on repeat meetings, three hosts work.
	inst, err := NewInstance(uniformFleet(6, 2, 6), 2)
	require.NoError(t, err)

	seq, err := Solve(context.Background(), inst)
	require.NoError(t, err)
	par, err := Solve(context.Background(), inst, WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, 3, seq.HostCount)
	assert.Equal(t, seq.HostCount, par.HostCount)
	assert.Equal(t, seq.Hosts, par.Hosts)
	assert.NoError(t, Verify(inst, seq))
	assert.NoError(t, Verify(inst, par))
	assert.Equal(t, 2, seq.Stats.LevelsProven)
}

func TestSolveParallelInfeasible(t *testing.T) {
	inst, err := NewInstance(uniformFleet(2, 3, 3), 1)
	require.NoError(t, err)

	_, err = Solve(context.Background(), inst, WithWorkers(3))
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSolveCancelledContext(t *testing.T) {
	inst, err := NewInstance(uniformFleet(4, 2, 4), 1)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 2} {
		_, err := Solve(ctx, inst, WithWorkers(workers))
		var budget *BudgetError
		require.ErrorAs(t, err, &budget, "workers=%d", workers)

		// Host count 1 falls to the capacity argument alone, so it is
		// proven even under a dead context.
		assert.Equal(t, 1, budget.Proven)
		assert.ErrorIs(t, err, ErrSearchCancelled)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestSolveCancelledBeforeFirstSearch(t *testing.T) {
	// Capacity covers host count 1, so proving it needs search the dead
	// context never grants.
	inst, err := NewInstance(uniformFleet(2, 2, 8), 1)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 2} {
		_, err := Solve(ctx, inst, WithWorkers(workers))
		var budget *BudgetError
		require.ErrorAs(t, err, &budget, "workers=%d", workers)
		assert.Equal(t, 0, budget.Proven)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestSolveNodeLimit(t *testing.T) {
	inst, err := NewInstance(uniformFleet(6, 2, 6), 2)
	require.NoError(t, err)

	_, err = Solve(context.Background(), inst, WithNodeLimit(1))
	var budget *BudgetError
	require.ErrorAs(t, err, &budget)
	assert.Equal(t, 1, budget.Proven)
	assert.ErrorIs(t, err, ErrSearchLimitReached)
	assert.ErrorIs(t, err, ErrSearchCancelled)
}

func TestSolveTimeLimit(t *testing.T) {
	// Large enough that the first searched level cannot finish before
	// the expired timer is observed at a node poll.
	inst, err := NewInstance(uniformFleet(24, 2, 6), 4)
	require.NoError(t, err)

	_, err = Solve(context.Background(), inst, WithTimeLimit(time.Nanosecond))
	var budget *BudgetError
	require.ErrorAs(t, err, &budget)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSolveLogsOutcome(t *testing.T) {
	inst, err := NewInstance(uniformFleet(4, 2, 4), 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	_, err = Solve(context.Background(), inst, WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "minimum host count found")
}

func TestSolveFixedHosts(t *testing.T) {
	inst, err := NewInstance(uniformFleet(4, 2, 4), 1)
	require.NoError(t, err)

	t.Run("feasible set", func(t *testing.T) {
		res, err := SolveFixedHosts(context.Background(), inst, []int{1, 0})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, res.Hosts)
		assert.NoError(t, Verify(inst, res))
	})

	t.Run("capacity short", func(t *testing.T) {
		_, err := SolveFixedHosts(context.Background(), inst, []int{0})
		assert.ErrorIs(t, err, ErrInfeasible)
	})

	t.Run("all boats host", func(t *testing.T) {
		res, err := SolveFixedHosts(context.Background(), inst, []int{0, 1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, 4, res.HostCount)
		assert.Empty(t, res.Itineraries)
		assert.NoError(t, Verify(inst, res))
	})

	t.Run("unknown boat", func(t *testing.T) {
		_, err := SolveFixedHosts(context.Background(), inst, []int{0, 9})
		assert.ErrorIs(t, err, ErrMalformedInstance)
	})

	t.Run("empty set", func(t *testing.T) {
		_, err := SolveFixedHosts(context.Background(), inst, nil)
		assert.ErrorIs(t, err, ErrMalformedInstance)
	})

	t.Run("cancelled budget", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := SolveFixedHosts(ctx, inst, []int{0, 1})
		var budget *BudgetError
		require.ErrorAs(t, err, &budget)
		assert.Equal(t, 0, budget.Proven)
	})
}

func TestSolveFixedHostsSearchInfeasible(t *testing.T) {
	// Capacity suffices but every pair of guests would meet twice.
	inst, err := NewInstance(uniformFleet(6, 2, 6), 2)
	require.NoError(t, err)

	_, err = SolveFixedHosts(context.Background(), inst, []int{0, 1})
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestStatsString(t *testing.T) {
	s := Stats{Nodes: 5, Backtracks: 2, Propagations: 40, Candidates: 3, LevelsProven: 1, MaxDepth: 2}
	out := s.String()
	assert.Contains(t, out, "nodes=5")
	assert.Contains(t, out, "backtracks=2")
	assert.Contains(t, out, "levels=1")
}

func TestResultHostLookup(t *testing.T) {
	inst, err := NewInstance(uniformFleet(4, 2, 4), 1)
	require.NoError(t, err)
	res, err := Solve(context.Background(), inst)
	require.NoError(t, err)

	h, ok := res.Host(2, 0)
	require.True(t, ok)
	assert.Equal(t, 0, h)

	_, ok = res.Host(0, 0) // a host, not a guest
	assert.False(t, ok)
	_, ok = res.Host(2, 5)
	assert.False(t, ok)
}

func TestBudgetErrorMessages(t *testing.T) {
	none := &BudgetError{Proven: 0, Cause: context.Canceled}
	assert.Contains(t, none.Error(), "before any host count")

	some := &BudgetError{Proven: 3, Cause: ErrSearchLimitReached}
	assert.Contains(t, some.Error(), "1..3")
	assert.ErrorIs(t, some, ErrSearchLimitReached)
	assert.ErrorIs(t, some, ErrSearchCancelled)
}

package party

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"

	"github.com/gitrdm/regatta/internal/parallel"
)

// Option configures a solve.
type Option func(*solveConfig)

type solveConfig struct {
	workers   int
	timeLimit time.Duration
	nodeLimit int64
	logger    *slog.Logger
}

func defaultConfig() solveConfig {
	return solveConfig{workers: 1}
}

// WithWorkers sets how many candidate host sets are searched concurrently
// within a host-count level.
//
// Contract:
//   - n <= 1 keeps the search sequential and fully deterministic.
//   - n > 1 trades determinism of the returned host set for speed: any
//     feasible candidate of the minimal level may win the race.
func WithWorkers(n int) Option {
	return func(c *solveConfig) { c.workers = n }
}

// WithTimeLimit bounds wall-clock solve time.
//
// Contract:
//   - d <= 0 means no limit.
//   - On expiry Solve returns a *BudgetError reporting how many host
//     counts were proven infeasible before the deadline.
func WithTimeLimit(d time.Duration) Option {
	return func(c *solveConfig) { c.timeLimit = d }
}

// WithNodeLimit bounds total branching decisions across the whole solve.
//
// Contract:
//   - n <= 0 means no limit.
//   - On exhaustion Solve returns a *BudgetError wrapping
//     ErrSearchLimitReached.
func WithNodeLimit(n int64) Option {
	return func(c *solveConfig) { c.nodeLimit = n }
}

// WithLogger routes solve progress to the given structured logger.
// A nil logger falls back to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *solveConfig) { c.logger = l }
}

// solveRun carries the shared state of one Solve call. The atomic
// counters are written by every searcher, including concurrent ones.
type solveRun struct {
	inst   *Instance
	cfg    solveConfig
	logger *slog.Logger
	pool   *parallel.WorkerPool

	nodes        atomic.Int64
	backtracks   atomic.Int64
	propagations atomic.Int64
	candidates   atomic.Int64
	maxDepth     atomic.Int64
	levelsProven int
}

// Solve finds the minimum number of host boats for which a full timetable
// exists, and returns one such timetable.
//
// Contract:
//   - Returns ErrMalformedInstance (wrapped) when inst is nil.
//   - Returns a *Result with the smallest feasible host count on success.
//   - Returns ErrInfeasible (wrapped) when no host count up to n-1 admits
//     a timetable.
//   - Returns a *BudgetError when ctx is cancelled, the time limit
//     expires, or the node limit is exhausted before a verdict.
//
// Implementation notes:
//   - Host counts are tried in ascending order, so the first success is
//     minimal. Counts below the period count cannot seat pairwise
//     distinct visits and are proven without search.
//   - Candidate host sets are enumerated over (crew, capacity)
//     equivalence classes, one representative per class shape, and sets
//     whose total capacity cannot seat the fleet are discarded before
//     search.
//   - A fleet of one boat hosts itself: the result has that boat as the
//     sole host and an empty visiting schedule.
func Solve(ctx context.Context, inst *Instance, opts ...Option) (*Result, error) {
	if inst == nil {
		return nil, fmt.Errorf("solve: nil instance: %w", ErrMalformedInstance)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.timeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeLimit)
		defer cancel()
	}

	start := time.Now()
	n := inst.BoatCount()
	if n == 1 {
		res := &Result{HostCount: 1, Hosts: []int{inst.boats[0].ID}, Itineraries: []Itinerary{}}
		res.Stats.Elapsed = time.Since(start)
		return res, nil
	}

	run := &solveRun{inst: inst, cfg: cfg, logger: logger}
	if cfg.workers > 1 {
		run.pool = parallel.NewWorkerPool(cfg.workers)
		defer run.pool.Shutdown()
	}

	periods := inst.Periods()
	for k := 1; k < n; k++ {
		if k < periods {
			logger.Debug("host count below period count, proven without search", "hosts", k)
			run.levelsProven = k
			continue
		}
		res, err := run.level(ctx, k)
		if err != nil {
			if errors.Is(err, ErrSearchCancelled) || errors.Is(err, ErrSearchLimitReached) {
				return nil, &BudgetError{Proven: run.levelsProven, Cause: budgetCause(ctx, err)}
			}
			return nil, err
		}
		if res != nil {
			res.Stats = run.stats(time.Since(start))
			logger.Info("minimum host count found",
				"hosts", k, "candidates", res.Stats.Candidates, "nodes", res.Stats.Nodes)
			return res, nil
		}
		run.levelsProven = k
		logger.Debug("host count proven infeasible", "hosts", k, "nodes", run.nodes.Load())
	}
	return nil, fmt.Errorf("%w (fleet of %d over %d periods)", ErrInfeasible, n, periods)
}

// SolveFixedHosts searches for a timetable with exactly the given boats
// hosting, skipping the minimization loop.
//
// Contract:
//   - hostIDs must be non-empty, known, and free of duplicates, or an
//     error wrapping ErrMalformedInstance is returned.
//   - Returns ErrInfeasible (wrapped) when the host set admits no
//     timetable, and a *BudgetError with Proven 0 on an exhausted budget.
func SolveFixedHosts(ctx context.Context, inst *Instance, hostIDs []int, opts ...Option) (*Result, error) {
	if inst == nil {
		return nil, fmt.Errorf("solve: nil instance: %w", ErrMalformedInstance)
	}
	hostPos, err := inst.hostPositions(hostIDs)
	if err != nil {
		return nil, err
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.timeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeLimit)
		defer cancel()
	}

	start := time.Now()
	ids := lo.Map(hostPos, func(pos, _ int) int { return inst.boats[pos].ID })
	run := &solveRun{inst: inst, cfg: cfg, logger: logger}
	if !inst.capacityCovers(hostPos) {
		return nil, fmt.Errorf("%w for hosts %v: fleet crew exceeds host capacity", ErrInfeasible, ids)
	}
	res, err := run.searchCandidate(ctx, hostPos)
	switch {
	case err != nil && (errors.Is(err, ErrSearchCancelled) || errors.Is(err, ErrSearchLimitReached)):
		return nil, &BudgetError{Proven: 0, Cause: budgetCause(ctx, err)}
	case err != nil:
		return nil, err
	case res == nil:
		return nil, fmt.Errorf("%w for hosts %v", ErrInfeasible, ids)
	}
	res.Stats = run.stats(time.Since(start))
	logger.Info("fixed host set solved", "hosts", ids, "nodes", res.Stats.Nodes)
	return res, nil
}

// budgetCause picks the most specific cause for a BudgetError: the node
// limit sentinel when it fired, otherwise whatever cancelled the context.
func budgetCause(ctx context.Context, err error) error {
	if errors.Is(err, ErrSearchLimitReached) {
		return ErrSearchLimitReached
	}
	if cause := context.Cause(ctx); cause != nil {
		return cause
	}
	return err
}

// level searches every candidate host set of size k. It returns a non-nil
// Result on the first feasible candidate, (nil, nil) when all candidates
// are exhausted, and an error when the budget interrupts the sweep.
func (r *solveRun) level(ctx context.Context, k int) (*Result, error) {
	if r.pool != nil {
		return r.levelParallel(ctx, k)
	}
	return r.levelSequential(ctx, k)
}

func (r *solveRun) levelSequential(ctx context.Context, k int) (*Result, error) {
	it := newHostSetIterator(r.inst.classes, k)
	for it.next() {
		hostPos := it.hostPositions()
		if !r.inst.capacityCovers(hostPos) {
			// Refuted by arithmetic, no budget spent.
			continue
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("host-count level %d: %w", k, ErrSearchCancelled)
		default:
		}
		res, err := r.searchCandidate(ctx, hostPos)
		if err != nil || res != nil {
			return res, err
		}
	}
	return nil, nil
}

// levelParallel races the level's candidates across the worker pool. The
// first feasible candidate wins and cancels the rest; losers stopped by
// that cancellation are not errors.
func (r *solveRun) levelParallel(parent context.Context, k int) (*Result, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		won       *Result
		firstErr  error
		truncated bool
	)
	interrupted := false
	it := newHostSetIterator(r.inst.classes, k)
	for it.next() {
		mu.Lock()
		stop := won != nil || firstErr != nil
		mu.Unlock()
		if stop {
			break
		}
		hostPos := it.hostPositions()
		if !r.inst.capacityCovers(hostPos) {
			continue
		}
		if parent.Err() != nil {
			interrupted = true
			break
		}
		wg.Add(1)
		submitErr := r.pool.Submit(ctx, func() {
			defer wg.Done()
			res, err := r.searchCandidate(ctx, hostPos)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, ErrSearchCancelled):
				truncated = true
			case err != nil:
				if firstErr == nil {
					firstErr = err
					cancel()
				}
			case res != nil:
				if won == nil {
					won = res
					cancel()
				}
			}
		})
		if submitErr != nil {
			wg.Done()
			interrupted = true
			break
		}
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	switch {
	case won != nil:
		return won, nil
	case firstErr != nil:
		return nil, firstErr
	case truncated || interrupted:
		// Some candidate search was cut short, so exhausting the
		// iterator proves nothing for this level.
		return nil, fmt.Errorf("host-count level %d: %w", k, ErrSearchCancelled)
	default:
		return nil, nil
	}
}

// searchCandidate runs one feasibility search and folds its counters into
// the run. It returns (nil, nil) when the candidate admits no timetable.
func (r *solveRun) searchCandidate(ctx context.Context, hostPos []int) (*Result, error) {
	m := newCSP(r.inst, hostPos)
	s := newSearcher(m, &r.nodes, &r.backtracks, r.cfg.nodeLimit)
	r.candidates.Add(1)
	sol, err := s.search(ctx)
	r.propagations.Add(s.st.propagations)
	storeMax(&r.maxDepth, int64(s.maxDepth))
	if err != nil || sol == nil {
		return nil, err
	}
	return newResult(m, sol), nil
}

func (r *solveRun) stats(elapsed time.Duration) Stats {
	return Stats{
		Nodes:        r.nodes.Load(),
		Backtracks:   r.backtracks.Load(),
		Propagations: r.propagations.Load(),
		Candidates:   int(r.candidates.Load()),
		LevelsProven: r.levelsProven,
		MaxDepth:     int(r.maxDepth.Load()),
		Elapsed:      elapsed,
	}
}

func storeMax(a *atomic.Int64, v int64) {
	for {
		cur := a.Load()
		if v <= cur || a.CompareAndSwap(cur, v) {
			return
		}
	}
}

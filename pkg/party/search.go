package party

import (
	"context"
	"fmt"
	"sync/atomic"
)

// searchPhase is where the engine stands in its cycle: propagate until
// domains are stable, branch on a variable, unwind on wipeout, and stop on
// a complete assignment or an exhausted stack.
type searchPhase uint8

const (
	phasePropagate searchPhase = iota
	phaseBranch
	phaseBacktrack
	phaseSuccess
	phaseFailure
)

// frame is one choice point: the trail mark to unwind to, the variable
// being branched, and its untried values. Values are captured when the
// frame is created, so the symmetry filter judges freshness at decision
// time.
type frame struct {
	mark   int
	vid    int
	values []int
	next   int
}

// searcher runs one feasibility search over a csp. Node and backtrack
// counters are shared with the owning solve so budgets and statistics span
// every candidate and worker.
type searcher struct {
	csp *csp
	st  *searchState

	nodes      *atomic.Int64
	backtracks *atomic.Int64
	nodeLimit  int64
	maxDepth   int

	noSym     bool   // disables the interchangeable-host value filter
	classSeen []bool // scratch for branchValues
}

func newSearcher(m *csp, nodes, backtracks *atomic.Int64, nodeLimit int64) *searcher {
	return &searcher{
		csp:        m,
		st:         newSearchState(m),
		nodes:      nodes,
		backtracks: backtracks,
		nodeLimit:  nodeLimit,
		classSeen:  make([]bool, len(m.inst.classes)),
	}
}

// search looks for one complete assignment. It returns the assignment as
// host positions indexed by vid, nil when the candidate is exhausted
// without a solution, an error wrapping ErrSearchCancelled when ctx is
// done, or ErrSearchLimitReached when the shared node budget runs out.
func (s *searcher) search(ctx context.Context) ([]int, error) {
	st := s.st
	for g := range s.csp.guestPos {
		st.markDirty(g)
	}

	var stack []frame
	phase := phasePropagate
	for {
		switch phase {
		case phasePropagate:
			switch {
			case !st.propagate():
				phase = phaseBacktrack
			case st.free == 0:
				phase = phaseSuccess
			default:
				phase = phaseBranch
			}

		case phaseBranch:
			if err := s.checkBudget(ctx); err != nil {
				return nil, err
			}
			vid := s.selectVariable()
			stack = append(stack, frame{mark: st.snapshot(), vid: vid, values: s.branchValues(vid)})
			if len(stack) > s.maxDepth {
				s.maxDepth = len(stack)
			}
			fr := &stack[len(stack)-1]
			h := fr.values[fr.next]
			fr.next++
			s.nodes.Add(1)
			if st.fix(vid, h) {
				phase = phasePropagate
			} else {
				phase = phaseBacktrack
			}

		case phaseBacktrack:
			s.backtracks.Add(1)
			if err := s.checkBudget(ctx); err != nil {
				return nil, err
			}
			phase = phaseFailure
			for len(stack) > 0 {
				fr := &stack[len(stack)-1]
				st.undo(fr.mark)
				if fr.next >= len(fr.values) {
					stack = stack[:len(stack)-1]
					continue
				}
				h := fr.values[fr.next]
				fr.next++
				s.nodes.Add(1)
				if !st.fix(fr.vid, h) {
					continue
				}
				phase = phasePropagate
				break
			}

		case phaseSuccess:
			sol := make([]int, len(st.val))
			copy(sol, st.val)
			if err := s.fullCheck(sol); err != nil {
				return nil, err
			}
			return sol, nil

		case phaseFailure:
			return nil, nil
		}
	}
}

// checkBudget polls cancellation and the shared node budget once per node.
func (s *searcher) checkBudget(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("feasibility search: %w", ErrSearchCancelled)
	default:
	}
	if s.nodeLimit > 0 && s.nodes.Load() > s.nodeLimit {
		return ErrSearchLimitReached
	}
	return nil
}

// selectVariable picks the unfixed variable with the smallest domain;
// ties fall to the smallest vid, which orders by guest then period.
func (s *searcher) selectVariable() int {
	st := s.st
	best, bestCnt := -1, int(^uint(0)>>1)
	for vid := 0; vid < s.csp.numVars; vid++ {
		if st.val[vid] >= 0 {
			continue
		}
		if c := st.cnt[vid]; c < bestCnt {
			best, bestCnt = vid, c
		}
	}
	return best
}

// branchValues lists vid's candidate hosts in ascending position order,
// which is ascending host identifier. Hosts of one (crew, capacity) class
// with no variable fixed to them are interchangeable in the current state,
// so only the lowest-positioned untouched host of each class stays.
func (s *searcher) branchValues(vid int) []int {
	st := s.st
	vals := st.dom[vid].values()
	if s.noSym {
		return vals
	}
	for i := range s.classSeen {
		s.classSeen[i] = false
	}
	out := vals[:0]
	for _, h := range vals {
		if st.touched[h] > 0 {
			out = append(out, h)
			continue
		}
		c := s.csp.hostClass[h]
		if s.classSeen[c] {
			continue
		}
		s.classSeen[c] = true
		out = append(out, h)
	}
	return out
}

// fullCheck re-validates a complete assignment against all three
// constraint families from scratch. Propagation makes violations
// impossible, so anything caught here is a solver defect, reported as an
// internal error rather than infeasibility.
func (s *searcher) fullCheck(sol []int) error {
	m := s.csp
	load := make([][]int, len(m.hostPos))
	for h := range load {
		row := make([]int, m.periods)
		for p := range row {
			row[p] = m.hostCrew[h]
		}
		load[h] = row
	}
	seen := make([]bool, len(m.hostPos))
	for g := range m.guestPos {
		for h := range seen {
			seen[h] = false
		}
		for p := 0; p < m.periods; p++ {
			h := sol[m.vid(g, p)]
			if h < 0 || h >= len(m.hostPos) {
				return fmt.Errorf("internal: guest %d period %d left unassigned", g, p)
			}
			if seen[h] {
				return fmt.Errorf("internal: guest %d visits host position %d twice", g, h)
			}
			seen[h] = true
			load[h][p] += m.guestCrew[g]
			if load[h][p] > m.hostCap[h] {
				return fmt.Errorf("internal: host position %d over capacity in period %d", h, p)
			}
		}
	}
	for g1 := 0; g1 < len(m.guestPos); g1++ {
		for g2 := g1 + 1; g2 < len(m.guestPos); g2++ {
			meetings := 0
			for p := 0; p < m.periods; p++ {
				if sol[m.vid(g1, p)] == sol[m.vid(g2, p)] {
					meetings++
				}
			}
			if meetings > 1 {
				return fmt.Errorf("internal: guests %d and %d meet %d times", g1, g2, meetings)
			}
		}
	}
	return nil
}

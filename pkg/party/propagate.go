package party

// Trail operation kinds. opFix restores an assignment along with the
// occupancy and touch count it carried; opRemove restores one pruned
// domain value; opMeet clears one recorded meeting.
type trailOp uint8

const (
	opFix trailOp = iota
	opRemove
	opMeet
)

type trailEntry struct {
	op   trailOp
	a, b int // opFix: vid, unused; opRemove: vid, host; opMeet: pair index, unused
}

// searchState is one branch's mutable view of a csp: current domains,
// assignments, the occupancy and meeting books, and the undo trail that
// makes every reduction reversible. Exactly one search owns a state; no
// locking, states are never shared across workers.
type searchState struct {
	csp *csp

	dom  []domain // by vid; meaningful only while the vid is unfixed
	cnt  []int    // domain sizes, maintained alongside removals
	val  []int    // assigned host position by vid, -1 while free
	free int      // unfixed variable count

	load    [][]int // [host position][period] people aboard
	metAt   []int   // guest pair -> period+1 of their meeting, 0 if none
	touched []int   // [host position] variables currently fixed to it

	trail []trailEntry
	queue []int // vids fixed but not yet propagated

	dirty    []int // guest rows needing a distinct-host matching re-check
	dirtySet []bool

	// Matching scratch, reused across rowMatching calls.
	mHost   []int
	mPeriod []int
	mOrder  []int
	mSeen   []int
	mToken  int

	propagations int64
}

func newSearchState(m *csp) *searchState {
	guests := len(m.guestPos)
	k := len(m.hostPos)
	st := &searchState{
		csp:  m,
		free: m.numVars,
		dom:  make([]domain, m.numVars),
		cnt:  make([]int, m.numVars),
		val:  make([]int, m.numVars),

		load:    make([][]int, k),
		metAt:   make([]int, guests*guests),
		touched: make([]int, k),

		dirtySet: make([]bool, guests),

		mHost:   make([]int, k),
		mPeriod: make([]int, m.periods),
		mOrder:  make([]int, 0, m.periods),
		mSeen:   make([]int, k),
	}
	for v := range st.dom {
		st.dom[v] = newFullDomain(k)
		st.cnt[v] = k
		st.val[v] = -1
	}
	for h := range st.load {
		row := make([]int, m.periods)
		for p := range row {
			row[p] = m.hostCrew[h]
		}
		st.load[h] = row
	}
	return st
}

// snapshot marks the current trail position for a later undo.
func (st *searchState) snapshot() int { return len(st.trail) }

// undo rewinds the trail to a snapshot, restoring domains, assignments,
// occupancy, meetings, and touch counts. Pending propagation work is
// discarded with it.
func (st *searchState) undo(to int) {
	m := st.csp
	for i := len(st.trail) - 1; i >= to; i-- {
		e := st.trail[i]
		switch e.op {
		case opFix:
			g, p := m.guestOf(e.a), m.periodOf(e.a)
			h := st.val[e.a]
			st.load[h][p] -= m.guestCrew[g]
			st.touched[h]--
			st.val[e.a] = -1
			st.free++
		case opRemove:
			st.dom[e.a].set(e.b)
			st.cnt[e.a]++
		case opMeet:
			st.metAt[e.a] = 0
		}
	}
	st.trail = st.trail[:to]
	st.queue = st.queue[:0]
	for _, g := range st.dirty {
		st.dirtySet[g] = false
	}
	st.dirty = st.dirty[:0]
}

// fix assigns host position h to vid and applies the immediate effects:
// occupancy, touch count, the trail record, and the propagation queue
// entry. False means the host overflowed on the spot. Either way the
// trail holds everything applied, so the caller's undo stays exact.
func (st *searchState) fix(vid, h int) bool {
	m := st.csp
	g, p := m.guestOf(vid), m.periodOf(vid)
	st.val[vid] = h
	st.touched[h]++
	st.load[h][p] += m.guestCrew[g]
	st.free--
	st.trail = append(st.trail, trailEntry{op: opFix, a: vid})
	if st.load[h][p] > m.hostCap[h] {
		return false
	}
	st.queue = append(st.queue, vid)
	return true
}

// remove prunes host position h from vid's domain. Removing a fixed
// variable's chosen value is a conflict; removing an absent value is a
// no-op. Wipeout reports false; a newly singleton domain becomes an
// implied assignment and joins the queue.
func (st *searchState) remove(vid, h int) bool {
	if v := st.val[vid]; v >= 0 {
		return v != h
	}
	if !st.dom[vid].has(h) {
		return true
	}
	st.dom[vid].clear(h)
	st.cnt[vid]--
	st.trail = append(st.trail, trailEntry{op: opRemove, a: vid, b: h})
	st.markDirty(st.csp.guestOf(vid))
	switch st.cnt[vid] {
	case 0:
		return false
	case 1:
		return st.fix(vid, st.dom[vid].first())
	}
	return true
}

// propagate drains the queue of fixed variables, applying the capacity,
// no-repeat-visit, and no-repeat-meeting rules incrementally, then
// re-checks the distinct-host matching of every row a rule shrank. False
// means the branch is dead; wipeout is this signal, never an error.
func (st *searchState) propagate() bool {
	m := st.csp
	for len(st.queue) > 0 {
		vid := st.queue[0]
		st.queue = st.queue[1:]
		st.propagations++
		g, p := m.guestOf(vid), m.periodOf(vid)
		h := st.val[vid]

		// No-repeat-visit: g never returns to h in another period.
		for q := 0; q < m.periods; q++ {
			if q == p {
				continue
			}
			if !st.remove(m.vid(g, q), h) {
				return false
			}
		}

		// Capacity: prune unfixed guests that no longer fit at (h, p).
		// Guests already assigned this period are part of the load and are
		// left alone. Implied fixes may grow the load again mid-loop; their
		// own queue turns redo the pruning with the fresh figure.
		room := m.hostCap[h] - st.load[h][p]
		for og := range m.guestPos {
			if og == g {
				continue
			}
			ov := m.vid(og, p)
			if st.val[ov] >= 0 {
				continue
			}
			if m.guestCrew[og] > room {
				if !st.remove(ov, h) {
					return false
				}
			}
		}

		// Meetings created by this assignment, with look-ahead: a pair
		// that met here may never share a host again.
		for og := range m.guestPos {
			if og == g || st.val[m.vid(og, p)] != h {
				continue
			}
			pi := m.pairIdx(g, og)
			if at := st.metAt[pi]; at != 0 {
				if at-1 != p {
					return false
				}
				continue
			}
			st.metAt[pi] = p + 1
			st.trail = append(st.trail, trailEntry{op: opMeet, a: pi})
			if !st.separate(g, og, p) {
				return false
			}
		}

		// Meetings recorded in other periods forbid h for those partners
		// here.
		for og := range m.guestPos {
			if og == g {
				continue
			}
			if at := st.metAt[m.pairIdx(g, og)]; at == 0 || at-1 == p {
				continue
			}
			if !st.remove(m.vid(og, p), h) {
				return false
			}
		}
	}
	return st.checkDirtyRows()
}

// separate prunes every chance for g and og to share a host in a period
// other than p, wherever one side is already fixed. Unfixed pairs stay
// lazy; later fixes re-trigger the rule.
func (st *searchState) separate(g, og, p int) bool {
	m := st.csp
	for q := 0; q < m.periods; q++ {
		if q == p {
			continue
		}
		v1, v2 := m.vid(g, q), m.vid(og, q)
		if x := st.val[v1]; x >= 0 {
			if !st.remove(v2, x) {
				return false
			}
		} else if y := st.val[v2]; y >= 0 {
			if !st.remove(v1, y) {
				return false
			}
		}
	}
	return true
}

func (st *searchState) markDirty(g int) {
	if !st.dirtySet[g] {
		st.dirtySet[g] = true
		st.dirty = append(st.dirty, g)
	}
}

// checkDirtyRows verifies that every touched guest row still admits P
// pairwise distinct hosts.
func (st *searchState) checkDirtyRows() bool {
	for len(st.dirty) > 0 {
		g := st.dirty[len(st.dirty)-1]
		st.dirty = st.dirty[:len(st.dirty)-1]
		st.dirtySet[g] = false
		if st.rowMatching(g) < st.csp.periods {
			return false
		}
	}
	return true
}

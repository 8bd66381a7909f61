package party

import "sort"

// rowMatching computes the size of a maximum bipartite matching between
// guest g's periods and the host positions, counting fixed assignments as
// claimed edges. A complete schedule needs P pairwise distinct hosts per
// guest, so a matching short of P kills the branch; this also subsumes the
// P > k pigeonhole at the root.
//
// Augmenting-path DFS with a token-stamped visited array; unfixed periods
// are tried smallest-domain-first. Scratch arrays live on searchState so
// the hot path allocates nothing.
func (st *searchState) rowMatching(g int) int {
	m := st.csp
	for h := range st.mHost {
		st.mHost[h] = -1
	}
	for p := range st.mPeriod {
		st.mPeriod[p] = -1
	}

	matched := 0
	for p := 0; p < m.periods; p++ {
		if h := st.val[m.vid(g, p)]; h >= 0 {
			if st.mHost[h] != -1 {
				return matched
			}
			st.mHost[h] = p
			st.mPeriod[p] = h
			matched++
		}
	}

	order := st.mOrder[:0]
	for p := 0; p < m.periods; p++ {
		if st.mPeriod[p] == -1 {
			order = append(order, p)
		}
	}
	sort.Slice(order, func(i, j int) bool {
		return st.cnt[m.vid(g, order[i])] < st.cnt[m.vid(g, order[j])]
	})
	for _, p := range order {
		st.mToken++
		if st.augment(g, p) {
			matched++
		}
	}
	return matched
}

// augment tries to match period p to some host in its domain, displacing
// reassignable occupants along an augmenting path.
func (st *searchState) augment(g, p int) bool {
	m := st.csp
	ok := false
	st.dom[m.vid(g, p)].forEach(func(h int) bool {
		if st.mSeen[h] == st.mToken {
			return true
		}
		st.mSeen[h] = st.mToken
		q := st.mHost[h]
		if q == -1 || (st.val[m.vid(g, q)] < 0 && st.augment(g, q)) {
			st.mHost[h] = p
			st.mPeriod[p] = h
			ok = true
			return false
		}
		return true
	})
	return ok
}

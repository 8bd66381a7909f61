package party

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Itinerary is one guest boat's visiting sequence: Hosts[p] is the boat
// identifier hosting the guest in period p.
type Itinerary struct {
	Guest int
	Hosts []int
}

// Result is a proven-minimal timetable.
//
// Hosts lists the hosting boats by identifier in ascending order, and
// Itineraries covers every non-host boat in ascending identifier order.
// Stats reports the effort spent across the whole solve, including levels
// proven infeasible below HostCount.
type Result struct {
	HostCount   int
	Hosts       []int
	Itineraries []Itinerary
	Stats       Stats
}

// Host reports which boat hosts guest in the given period. The boolean is
// false when guest is not a guest boat of this result or period is out of
// range.
func (r *Result) Host(guest, period int) (int, bool) {
	for _, it := range r.Itineraries {
		if it.Guest != guest {
			continue
		}
		if period < 0 || period >= len(it.Hosts) {
			return 0, false
		}
		return it.Hosts[period], true
	}
	return 0, false
}

func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "hosts (%d): %v\n", r.HostCount, r.Hosts)
	for _, it := range r.Itineraries {
		fmt.Fprintf(&b, "guest %d: %v\n", it.Guest, it.Hosts)
	}
	return b.String()
}

// newResult translates a complete assignment over host positions back into
// boat identifiers.
func newResult(m *csp, sol []int) *Result {
	inst := m.inst
	hosts := lo.Map(m.hostPos, func(pos, _ int) int { return inst.boats[pos].ID })
	its := make([]Itinerary, 0, len(m.guestPos))
	for g, pos := range m.guestPos {
		it := Itinerary{Guest: inst.boats[pos].ID, Hosts: make([]int, m.periods)}
		for p := 0; p < m.periods; p++ {
			it.Hosts[p] = inst.boats[m.hostPos[sol[m.vid(g, p)]]].ID
		}
		its = append(its, it)
	}
	return &Result{HostCount: len(hosts), Hosts: hosts, Itineraries: its}
}

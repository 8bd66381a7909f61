package party

import (
	"fmt"
	"sort"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// Verify checks a Result against its Instance from first principles. It
// re-derives the host and guest partition, recomputes every period load,
// and re-counts every pairwise meeting, sharing no code with the solver.
// The no-repeat-visit property is additionally cross-checked as a maximum
// bipartite matching between periods and hosts, which must be perfect.
//
// Contract:
//   - Returns nil when res is a valid timetable for inst.
//   - Returns a descriptive error naming the first violation found.
//   - Does not mutate inst or res.
func Verify(inst *Instance, res *Result) error {
	if inst == nil {
		return fmt.Errorf("verify: nil instance")
	}
	if res == nil {
		return fmt.Errorf("verify: nil result")
	}
	if res.HostCount != len(res.Hosts) {
		return fmt.Errorf("verify: host count %d does not match %d listed hosts", res.HostCount, len(res.Hosts))
	}
	if len(res.Hosts) == 0 {
		return fmt.Errorf("verify: empty host set")
	}

	hostSet := make(map[int]bool, len(res.Hosts))
	for i, id := range res.Hosts {
		if _, ok := inst.BoatByID(id); !ok {
			return fmt.Errorf("verify: host %d is not in the fleet", id)
		}
		if i > 0 && id <= res.Hosts[i-1] {
			return fmt.Errorf("verify: hosts not in ascending order at %d", id)
		}
		hostSet[id] = true
	}

	wantGuests := make([]int, 0, inst.BoatCount()-len(res.Hosts))
	for _, b := range inst.Boats() {
		if !hostSet[b.ID] {
			wantGuests = append(wantGuests, b.ID)
		}
	}
	gotGuests := lo.Map(res.Itineraries, func(it Itinerary, _ int) int { return it.Guest })
	if !sort.IntsAreSorted(gotGuests) {
		return fmt.Errorf("verify: itineraries not in ascending guest order")
	}
	if len(gotGuests) != len(wantGuests) {
		return fmt.Errorf("verify: %d itineraries for %d guest boats", len(gotGuests), len(wantGuests))
	}
	for i, id := range wantGuests {
		if gotGuests[i] != id {
			return fmt.Errorf("verify: guest %d has no itinerary", id)
		}
	}

	periods := inst.Periods()
	for _, it := range res.Itineraries {
		if len(it.Hosts) != periods {
			return fmt.Errorf("verify: guest %d visits %d hosts over %d periods", it.Guest, len(it.Hosts), periods)
		}
		seen := make(map[int]bool, periods)
		for p, h := range it.Hosts {
			if !hostSet[h] {
				return fmt.Errorf("verify: guest %d visits non-host %d in period %d", it.Guest, h, p)
			}
			if seen[h] {
				return fmt.Errorf("verify: guest %d visits host %d more than once", it.Guest, h)
			}
			seen[h] = true
		}
		if err := verifyDistinctMatching(it, res.Hosts, periods); err != nil {
			return err
		}
	}

	for _, id := range res.Hosts {
		host, _ := inst.BoatByID(id)
		for p := 0; p < periods; p++ {
			load := host.Crew
			for _, it := range res.Itineraries {
				if it.Hosts[p] == id {
					guest, _ := inst.BoatByID(it.Guest)
					load += guest.Crew
				}
			}
			if load > host.Capacity {
				return fmt.Errorf("verify: host %d holds %d crew in period %d, capacity %d", id, load, p, host.Capacity)
			}
		}
	}

	for i := 0; i < len(res.Itineraries); i++ {
		for j := i + 1; j < len(res.Itineraries); j++ {
			a, b := res.Itineraries[i], res.Itineraries[j]
			meetings := 0
			for p := 0; p < periods; p++ {
				if a.Hosts[p] == b.Hosts[p] {
					meetings++
				}
			}
			if meetings > 1 {
				return fmt.Errorf("verify: guests %d and %d meet %d times", a.Guest, b.Guest, meetings)
			}
		}
	}
	return nil
}

// verifyDistinctMatching restates no-repeat-visit as a matching problem:
// pairing each period with the host visited in it must yield a perfect
// matching, which fails exactly when two periods compete for one host.
func verifyDistinctMatching(it Itinerary, hosts []int, periods int) error {
	left := lo.Map(lo.Range(periods), func(p, _ int) any { return p })
	right := lo.Map(hosts, func(h, _ int) any { return h })
	graph, err := bipartitegraph.NewBipartiteGraph(left, right, func(l, r any) (bool, error) {
		return it.Hosts[l.(int)] == r.(int), nil
	})
	if err != nil {
		return fmt.Errorf("verify: guest %d matching: %w", it.Guest, err)
	}
	if got := len(graph.LargestMatching()); got != periods {
		return fmt.Errorf("verify: guest %d matches only %d of %d periods to distinct hosts", it.Guest, got, periods)
	}
	return nil
}

package party

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Instance is the immutable description of one solve: the fleet and the
// number of party periods. Construct it with NewInstance; values built any
// other way carry no invariant guarantees.
//
// Boats are kept in ascending identifier order, so "position" below always
// means an index into that ordering.
type Instance struct {
	boats     []Boat
	periods   int
	totalCrew int
	posByID   map[int]int

	// Interchangeability partition: boat positions grouped by identical
	// (crew, capacity), groups ordered by (crew, capacity) and members
	// ascending. Computed once; host-set enumeration and in-search
	// symmetry breaking both consult it.
	classes [][]int
	classOf []int
}

// NewInstance validates the fleet and builds an instance.
//
// Contract:
//   - at least one boat, periods >= 1
//   - every boat: non-negative unique ID, crew >= 1, capacity >= crew
//   - violations return an error wrapping ErrMalformedInstance; no search
//     is ever attempted on a malformed fleet
func NewInstance(boats []Boat, periods int) (*Instance, error) {
	if len(boats) == 0 {
		return nil, fmt.Errorf("%w: empty fleet", ErrMalformedInstance)
	}
	if periods < 1 {
		return nil, fmt.Errorf("%w: period count %d, want >= 1", ErrMalformedInstance, periods)
	}
	fleet := make([]Boat, len(boats))
	copy(fleet, boats)
	sort.Slice(fleet, func(i, j int) bool { return fleet[i].ID < fleet[j].ID })

	posByID := make(map[int]int, len(fleet))
	for i, b := range fleet {
		if err := b.validate(); err != nil {
			return nil, err
		}
		if i > 0 && fleet[i-1].ID == b.ID {
			return nil, fmt.Errorf("%w: duplicate boat identifier %d", ErrMalformedInstance, b.ID)
		}
		posByID[b.ID] = i
	}

	inst := &Instance{
		boats:     fleet,
		periods:   periods,
		totalCrew: lo.SumBy(fleet, func(b Boat) int { return b.Crew }),
		posByID:   posByID,
	}
	inst.classes, inst.classOf = partitionByShape(fleet)
	return inst, nil
}

// Periods reports the number of party periods.
func (in *Instance) Periods() int { return in.periods }

// BoatCount reports the fleet size.
func (in *Instance) BoatCount() int { return len(in.boats) }

// TotalCrew reports the summed crew size of the whole fleet.
func (in *Instance) TotalCrew() int { return in.totalCrew }

// Boats returns a copy of the fleet in ascending identifier order.
func (in *Instance) Boats() []Boat {
	out := make([]Boat, len(in.boats))
	copy(out, in.boats)
	return out
}

// BoatByID looks a boat up by identifier.
func (in *Instance) BoatByID(id int) (Boat, bool) {
	pos, ok := in.posByID[id]
	if !ok {
		return Boat{}, false
	}
	return in.boats[pos], true
}

// Classes returns the interchangeability partition as boat identifiers:
// boats with identical (crew, capacity) share a group. Groups and their
// members come out in deterministic order.
func (in *Instance) Classes() [][]int {
	return lo.Map(in.classes, func(class []int, _ int) []int {
		return lo.Map(class, func(pos int, _ int) int { return in.boats[pos].ID })
	})
}

func (in *Instance) String() string {
	return fmt.Sprintf("fleet of %d boats, %d periods, total crew %d", len(in.boats), in.periods, in.totalCrew)
}

// hostPositions resolves boat identifiers to positions, rejecting empty
// sets and unknown or duplicate identifiers.
func (in *Instance) hostPositions(hostIDs []int) ([]int, error) {
	if len(hostIDs) == 0 {
		return nil, fmt.Errorf("%w: empty host set", ErrMalformedInstance)
	}
	pos := make([]int, 0, len(hostIDs))
	seen := make(map[int]bool, len(hostIDs))
	for _, id := range hostIDs {
		p, ok := in.posByID[id]
		if !ok {
			return nil, fmt.Errorf("%w: host set names unknown boat %d", ErrMalformedInstance, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: host set repeats boat %d", ErrMalformedInstance, id)
		}
		seen[id] = true
		pos = append(pos, p)
	}
	sort.Ints(pos)
	return pos, nil
}

// capacityCovers reports whether the boats at the given positions could
// seat the whole fleet's crew at once. Every crew is aboard some host in
// every period, so a host set failing this admits no schedule.
func (in *Instance) capacityCovers(hostPos []int) bool {
	total := lo.SumBy(hostPos, func(pos int) int { return in.boats[pos].Capacity })
	return total >= in.totalCrew
}

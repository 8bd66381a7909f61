package party

import (
	"fmt"
	"math/rand/v2"
)

// RandomInstance builds a reproducible random fleet: crew sizes uniform in
// [4, 20), capacities adding headroom uniform in [0, 100) on top of the
// crew, identifiers 0..boats-1. The same seed always yields the same
// fleet, so generated instances are usable in regression tests and
// benchmarks.
func RandomInstance(boats, periods int, seed uint64) (*Instance, error) {
	if boats < 1 {
		return nil, fmt.Errorf("%w: fleet size %d, want >= 1", ErrMalformedInstance, boats)
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	fleet := make([]Boat, boats)
	for i := range fleet {
		crew := 4 + rng.IntN(16)
		fleet[i] = Boat{ID: i, Crew: crew, Capacity: crew + rng.IntN(100)}
	}
	return NewInstance(fleet, periods)
}

package party

import "fmt"

// Boat describes one boat of the fleet: a stable identifier, the size of
// its crew, and how many people it can hold at once. Capacity counts
// everyone aboard, the boat's own crew included, so Capacity >= Crew must
// hold for the boat to be usable at all.
type Boat struct {
	ID       int
	Crew     int
	Capacity int
}

// Spare reports how many visitors fit aboard once the boat's own crew is
// seated.
func (b Boat) Spare() int { return b.Capacity - b.Crew }

func (b Boat) String() string {
	return fmt.Sprintf("boat %d (crew %d, capacity %d)", b.ID, b.Crew, b.Capacity)
}

// validate checks the per-boat structural invariants.
func (b Boat) validate() error {
	if b.ID < 0 {
		return fmt.Errorf("%w: boat identifier %d is negative", ErrMalformedInstance, b.ID)
	}
	if b.Crew < 1 {
		return fmt.Errorf("%w: boat %d has crew %d, want >= 1", ErrMalformedInstance, b.ID, b.Crew)
	}
	if b.Capacity < b.Crew {
		return fmt.Errorf("%w: boat %d has capacity %d below its crew %d", ErrMalformedInstance, b.ID, b.Capacity, b.Crew)
	}
	return nil
}

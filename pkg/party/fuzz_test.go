package party

import (
	"context"
	"errors"
	"testing"
)

// FuzzSolve drives the whole pipeline with generated fleets: any outcome
// other than a verified schedule, a proven infeasibility, or an exhausted
// budget is a solver defect.
func FuzzSolve(f *testing.F) {
	f.Add(4, 1, uint64(7))
	f.Add(5, 2, uint64(0))
	f.Add(6, 2, uint64(42))
	f.Add(1, 3, uint64(5))
	f.Add(7, 3, uint64(99))

	f.Fuzz(func(t *testing.T, boats, periods int, seed uint64) {
		boats = clampDim(boats, 7)
		periods = clampDim(periods, 3)

		inst, err := RandomInstance(boats, periods, seed)
		if err != nil {
			t.Fatalf("generator rejected valid dimensions: %v", err)
		}

		res, err := Solve(context.Background(), inst, WithNodeLimit(50000))
		var budget *BudgetError
		switch {
		case err == nil:
			if verr := Verify(inst, res); verr != nil {
				t.Fatalf("unverifiable schedule: %v", verr)
			}
			if res.HostCount != len(res.Hosts) {
				t.Fatalf("host count %d with %d hosts", res.HostCount, len(res.Hosts))
			}
		case errors.Is(err, ErrInfeasible):
			// Normal outcome.
		case errors.As(err, &budget):
			if budget.Proven < 0 || budget.Proven >= boats {
				t.Fatalf("proven level %d out of range", budget.Proven)
			}
		default:
			t.Fatalf("unexpected solve error: %v", err)
		}
	})
}

// FuzzNewInstance checks that validation never lets a malformed boat
// through and never rejects a well-formed one.
func FuzzNewInstance(f *testing.F) {
	f.Add(0, 2, 4, 1)
	f.Add(-1, 0, 0, 0)
	f.Add(3, 5, 4, 2)

	f.Fuzz(func(t *testing.T, id, crew, capacity, periods int) {
		inst, err := NewInstance([]Boat{{ID: id, Crew: crew, Capacity: capacity}}, periods)
		wellFormed := id >= 0 && crew >= 1 && capacity >= crew && periods >= 1
		if wellFormed && err != nil {
			t.Fatalf("rejected well-formed boat: %v", err)
		}
		if !wellFormed {
			if !errors.Is(err, ErrMalformedInstance) {
				t.Fatalf("want ErrMalformedInstance, got %v", err)
			}
			return
		}
		if inst.BoatCount() != 1 || inst.TotalCrew() != crew {
			t.Fatalf("instance misreads the fleet: %v", inst)
		}
	})
}

// clampDim folds an arbitrary fuzz input into [1, n], safe for any int
// including the minimum.
func clampDim(v, n int) int {
	m := v % n
	if m < 0 {
		m += n
	}
	return 1 + m
}

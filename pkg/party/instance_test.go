package party

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstance(t *testing.T) {
	inst, err := NewInstance([]Boat{
		{ID: 4, Crew: 3, Capacity: 9},
		{ID: 1, Crew: 2, Capacity: 6},
		{ID: 7, Crew: 2, Capacity: 6},
	}, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, inst.Periods())
	assert.Equal(t, 3, inst.BoatCount())
	assert.Equal(t, 7, inst.TotalCrew())

	boats := inst.Boats()
	require.Len(t, boats, 3)
	assert.Equal(t, []int{1, 4, 7}, []int{boats[0].ID, boats[1].ID, boats[2].ID})

	b, ok := inst.BoatByID(4)
	require.True(t, ok)
	assert.Equal(t, Boat{ID: 4, Crew: 3, Capacity: 9}, b)
	_, ok = inst.BoatByID(2)
	assert.False(t, ok)

	// Boats 1 and 7 share (crew 2, capacity 6); boat 4 stands alone.
	assert.Equal(t, [][]int{{1, 7}, {4}}, inst.Classes())
}

func TestNewInstanceRejectsMalformedFleets(t *testing.T) {
	cases := []struct {
		name    string
		boats   []Boat
		periods int
	}{
		{"empty fleet", nil, 3},
		{"zero periods", []Boat{{ID: 0, Crew: 2, Capacity: 4}}, 0},
		{"negative identifier", []Boat{{ID: -1, Crew: 2, Capacity: 4}}, 3},
		{"zero crew", []Boat{{ID: 0, Crew: 0, Capacity: 4}}, 3},
		{"capacity below crew", []Boat{{ID: 0, Crew: 5, Capacity: 4}}, 3},
		{"duplicate identifier", []Boat{
			{ID: 2, Crew: 2, Capacity: 4},
			{ID: 2, Crew: 3, Capacity: 6},
		}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewInstance(tc.boats, tc.periods)
			require.ErrorIs(t, err, ErrMalformedInstance)
		})
	}
}

func TestBoatsReturnsCopy(t *testing.T) {
	inst, err := NewInstance([]Boat{{ID: 0, Crew: 2, Capacity: 4}}, 1)
	require.NoError(t, err)
	inst.Boats()[0].Crew = 99
	assert.Equal(t, 2, inst.Boats()[0].Crew)
}

func TestBoatSpare(t *testing.T) {
	assert.Equal(t, 4, Boat{ID: 0, Crew: 2, Capacity: 6}.Spare())
	assert.Equal(t, 0, Boat{ID: 1, Crew: 3, Capacity: 3}.Spare())
}

func TestHostPositions(t *testing.T) {
	inst, err := NewInstance([]Boat{
		{ID: 10, Crew: 2, Capacity: 6},
		{ID: 20, Crew: 2, Capacity: 6},
		{ID: 30, Crew: 2, Capacity: 6},
	}, 1)
	require.NoError(t, err)

	pos, err := inst.hostPositions([]int{30, 10})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, pos)

	_, err = inst.hostPositions(nil)
	assert.ErrorIs(t, err, ErrMalformedInstance)
	_, err = inst.hostPositions([]int{10, 99})
	assert.ErrorIs(t, err, ErrMalformedInstance)
	_, err = inst.hostPositions([]int{10, 10})
	assert.ErrorIs(t, err, ErrMalformedInstance)
}

func TestCapacityCovers(t *testing.T) {
	inst, err := NewInstance([]Boat{
		{ID: 0, Crew: 2, Capacity: 4},
		{ID: 1, Crew: 2, Capacity: 4},
		{ID: 2, Crew: 2, Capacity: 4},
	}, 1)
	require.NoError(t, err)

	// Total crew is 6: one host seats 4, two seat 8.
	assert.False(t, inst.capacityCovers([]int{0}))
	assert.True(t, inst.capacityCovers([]int{0, 1}))
}

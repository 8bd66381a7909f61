package party

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomInstanceDeterministic(t *testing.T) {
	a, err := RandomInstance(12, 4, 7)
	require.NoError(t, err)
	b, err := RandomInstance(12, 4, 7)
	require.NoError(t, err)
	assert.Equal(t, a.Boats(), b.Boats())
	assert.Equal(t, a.Periods(), b.Periods())
}

func TestRandomInstanceShape(t *testing.T) {
	inst, err := RandomInstance(30, 5, 42)
	require.NoError(t, err)
	require.Equal(t, 30, inst.BoatCount())
	assert.Equal(t, 5, inst.Periods())

	for i, b := range inst.Boats() {
		assert.Equal(t, i, b.ID)
		assert.GreaterOrEqual(t, b.Crew, 4)
		assert.Less(t, b.Crew, 20)
		assert.GreaterOrEqual(t, b.Capacity, b.Crew)
		assert.Less(t, b.Capacity, b.Crew+100)
	}
}

func TestRandomInstanceRejectsBadDimensions(t *testing.T) {
	_, err := RandomInstance(0, 3, 1)
	assert.ErrorIs(t, err, ErrMalformedInstance)
	_, err = RandomInstance(5, 0, 1)
	assert.ErrorIs(t, err, ErrMalformedInstance)
}

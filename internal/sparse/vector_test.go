package sparse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCounts_SortsAndDropsZeros(t *testing.T) {
	v := FromCounts(map[int]float64{5: 2, 1: 1, 3: 0})
	assert.Equal(t, []int{1, 5}, v.Indices)
	assert.Equal(t, []float64{1, 2}, v.Values)
	assert.Equal(t, 2.0, v.At(5))
	assert.Equal(t, 0.0, v.At(3))
}

func TestDot(t *testing.T) {
	v := Vector{Indices: []int{0, 2}, Values: []float64{1, 3}}
	got, err := v.Dot([]float64{2, 100, 4})
	require.NoError(t, err)
	assert.Equal(t, 14.0, got)

	_, err = v.Dot([]float64{1})
	assert.ErrorIs(t, err, ErrDimMismatch)
}

func TestNormalizeL2(t *testing.T) {
	v := Vector{Indices: []int{0, 1}, Values: []float64{3, 4}}
	n := NormalizeL2(v)
	assert.InDelta(t, 0.6, n.Values[0], 1e-12)
	assert.InDelta(t, 0.8, n.Values[1], 1e-12)
	assert.Equal(t, []float64{3, 4}, v.Values, "input must not be modified")

	var sum float64
	for _, x := range n.Values {
		sum += x * x
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-12)

	zero := NormalizeL2(Vector{})
	assert.Empty(t, zero.Values)
}

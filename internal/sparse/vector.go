// Package sparse holds the compressed row vectors produced by the vectorizers.
package sparse

import (
	"math"
	"sort"
)

// Vector is a sparse row. Indices are ascending and unique.
type Vector struct {
	Indices []int
	Values  []float64
}

// FromCounts builds a Vector from a column->value map, dropping zeros.
func FromCounts(m map[int]float64) Vector {
	idx := make([]int, 0, len(m))
	for i, v := range m {
		if v != 0 {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)
	vals := make([]float64, len(idx))
	for k, i := range idx {
		vals[k] = m[i]
	}
	return Vector{Indices: idx, Values: vals}
}

// NNZ returns the number of stored entries.
func (v Vector) NNZ() int { return len(v.Indices) }

// At returns the value stored for column i, or 0.
func (v Vector) At(i int) float64 {
	k := sort.SearchInts(v.Indices, i)
	if k < len(v.Indices) && v.Indices[k] == i {
		return v.Values[k]
	}
	return 0
}

// Dot computes the dot product of v with the dense slice w.
func (v Vector) Dot(w []float64) (float64, error) {
	var sum float64
	for k, i := range v.Indices {
		if i >= len(w) {
			return 0, ErrDimMismatch
		}
		sum += v.Values[k] * w[i]
	}
	return sum, nil
}

// NormalizeL2 returns a copy of v scaled to unit L2 norm. A zero vector is
// returned unchanged.
func NormalizeL2(v Vector) Vector {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	out := Vector{
		Indices: append([]int(nil), v.Indices...),
		Values:  make([]float64, len(v.Values)),
	}
	n := math.Sqrt(sum)
	if n == 0 {
		copy(out.Values, v.Values)
		return out
	}
	inv := 1.0 / n
	for i, x := range v.Values {
		out.Values[i] = x * inv
	}
	return out
}

// Matrix is an ordered list of rows sharing one width.
type Matrix struct {
	Rows []Vector
	Cols int
}

// Shape returns (rows, cols).
func (m *Matrix) Shape() (int, int) {
	return len(m.Rows), m.Cols
}

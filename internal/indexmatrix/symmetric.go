// Package indexmatrix provides two-dimensional matrices addressed by a pair of
// dense indices and stored as one linear slice.
package indexmatrix

// Symmetric is an n×n matrix where (i, j) and (j, i) address the same cell.
// Only the upper triangle and the diagonal are stored.
//
// Indices are not bounds checked beyond what the slice access does; callers
// validate them first.
type Symmetric struct {
	n    int
	data []float64
}

// NewSymmetric creates a zeroed n×n symmetric matrix.
func NewSymmetric(n int) *Symmetric {
	return &Symmetric{
		n:    n,
		data: make([]float64, n*(n+1)/2),
	}
}

// index maps (i, j) to the linear position of the upper-triangle cell.
// Row i starts after the i preceding rows of lengths n, n-1, ..., n-i+1.
func (m *Symmetric) index(i, j int) int {
	if i > j {
		i, j = j, i
	}
	return i*m.n - i*(i-1)/2 + (j - i)
}

// Get returns the value at (i, j).
func (m *Symmetric) Get(i, j int) float64 {
	return m.data[m.index(i, j)]
}

// Set stores v at (i, j), which is also (j, i).
func (m *Symmetric) Set(i, j int, v float64) {
	m.data[m.index(i, j)] = v
}

// Size returns the edge length n.
func (m *Symmetric) Size() int {
	return m.n
}

// Row returns the cells (i, i..n-1) as a view into the matrix storage.
// Writing to the view writes to the matrix; distinct rows never overlap.
func (m *Symmetric) Row(i int) []float64 {
	start := m.index(i, i)
	return m.data[start : start+m.n-i]
}

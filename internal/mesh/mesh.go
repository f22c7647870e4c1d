// Package mesh holds the 1-D discretized domains the plot driver evaluates
// expressions over.
package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Interval is a uniform partition of [a, b] into cells line segments.
type Interval struct {
	cells  int
	a, b   float64
	coords []float64
}

// NewInterval builds an interval mesh with cells segments and cells+1 vertices.
func NewInterval(cells int, a, b float64) (*Interval, error) {
	if cells < 1 {
		return nil, fmt.Errorf("mesh: interval needs at least one cell, got %d", cells)
	}
	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		return nil, fmt.Errorf("mesh: non-finite bounds [%v, %v]", a, b)
	}
	if b <= a {
		return nil, fmt.Errorf("mesh: degenerate interval [%v, %v]", a, b)
	}
	coords := floats.Span(make([]float64, cells+1), a, b)
	return &Interval{cells: cells, a: a, b: b, coords: coords}, nil
}

func (m *Interval) NumCells() int    { return m.cells }
func (m *Interval) NumVertices() int { return m.cells + 1 }

func (m *Interval) Bounds() (a, b float64) { return m.a, m.b }

// Coordinates returns a copy of the vertex coordinates, ordered a to b.
func (m *Interval) Coordinates() []float64 {
	out := make([]float64, len(m.coords))
	copy(out, m.coords)
	return out
}

func (m *Interval) String() string {
	return fmt.Sprintf("Interval(%d cells, [%g, %g])", m.cells, m.a, m.b)
}

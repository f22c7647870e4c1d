package mesh

import (
	"math"
	"testing"
)

func TestNewInterval(t *testing.T) {
	m, err := NewInterval(100, -2.0, 2.0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if m.NumCells() != 100 {
		t.Fatalf("unexpected cells: %d", m.NumCells())
	}
	if m.NumVertices() != 101 {
		t.Fatalf("unexpected vertices: %d", m.NumVertices())
	}

	coords := m.Coordinates()
	if coords[0] != -2.0 || coords[len(coords)-1] != 2.0 {
		t.Fatalf("unexpected endpoints: %v, %v", coords[0], coords[len(coords)-1])
	}

	h := 4.0 / 100
	for i := 1; i < len(coords); i++ {
		if math.Abs((coords[i]-coords[i-1])-h) > 1e-12 {
			t.Fatalf("non-uniform spacing at %d: %v", i, coords[i]-coords[i-1])
		}
	}
}

func TestNewIntervalOffsetEndpoints(t *testing.T) {
	eps := 1e-8
	m, err := NewInterval(100, 0+eps, 1-eps)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	a, b := m.Bounds()
	if a != eps || b != 1-eps {
		t.Fatalf("unexpected bounds: %v, %v", a, b)
	}
}

func TestNewIntervalErrors(t *testing.T) {
	cases := []struct {
		name  string
		cells int
		a, b  float64
	}{
		{"zero cells", 0, 0, 1},
		{"negative cells", -5, 0, 1},
		{"inverted", 10, 2, -2},
		{"empty", 10, 1, 1},
		{"nan bound", 10, math.NaN(), 1},
		{"inf bound", 10, 0, math.Inf(1)},
	}
	for _, tc := range cases {
		if _, err := NewInterval(tc.cells, tc.a, tc.b); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestCoordinatesCopy(t *testing.T) {
	m, err := NewInterval(4, 0, 1)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	c := m.Coordinates()
	c[0] = 99
	if m.Coordinates()[0] == 99 {
		t.Fatalf("coordinates aliased internal storage")
	}
}

package render

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/tveita/femctl/internal/expr"
	"github.com/tveita/femctl/internal/mesh"
)

func TestSample(t *testing.T) {
	m, err := mesh.NewInterval(4, 0, 1)
	if err != nil {
		t.Fatalf("mesh: %v", err)
	}
	s := Sample(expr.Exp(expr.X()), m)
	if len(s.X) != 5 || len(s.Y) != 5 {
		t.Fatalf("unexpected series length: %d, %d", len(s.X), len(s.Y))
	}
	if s.Y[0] != 1 {
		t.Fatalf("exp(0) sample = %v", s.Y[0])
	}
	if math.Abs(s.Y[4]-math.E) > 1e-12 {
		t.Fatalf("exp(1) sample = %v", s.Y[4])
	}
}

func TestLineAndSavePNG(t *testing.T) {
	m, err := mesh.NewInterval(100, -2, 2)
	if err != nil {
		t.Fatalf("mesh: %v", err)
	}
	e := expr.Cos(expr.X())
	p, err := Line(Sample(e, m), e.String())
	if err != nil {
		t.Fatalf("line: %v", err)
	}

	path := filepath.Join(t.TempDir(), "plots", "cos.png")
	if err := SavePNG(p, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("empty artifact")
	}
}

func TestLineErrors(t *testing.T) {
	if _, err := Line(Series{X: []float64{1}, Y: nil}, "t"); err == nil {
		t.Fatalf("expected mismatch error")
	}
	if _, err := Line(Series{}, "t"); err == nil {
		t.Fatalf("expected empty series error")
	}
}

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"cos":       "cos.png",
		"bessel_J0": "bessel_J0.png",
		"a b/c":     "a_b_c.png",
		"  ":        "figure.png",
	}
	for in, want := range cases {
		if got := FileName(in); got != want {
			t.Fatalf("FileName(%q) = %q, want %q", in, got, want)
		}
	}
}

// Package render samples expressions over a mesh and draws line plots.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tveita/femctl/internal/expr"
	"github.com/tveita/femctl/internal/mesh"
)

// Series holds one sampled function, X ascending.
type Series struct {
	X []float64
	Y []float64
}

// Sample evaluates e at every mesh vertex.
func Sample(e expr.Expr, m *mesh.Interval) Series {
	xs := m.Coordinates()
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = e.Eval(x)
	}
	return Series{X: xs, Y: ys}
}

// Line builds a titled line plot of the series.
func Line(s Series, title string) (*plot.Plot, error) {
	if len(s.X) != len(s.Y) {
		return nil, fmt.Errorf("render: series length mismatch (%d x, %d y)", len(s.X), len(s.Y))
	}
	if len(s.X) == 0 {
		return nil, fmt.Errorf("render: empty series")
	}

	xys := make(plotter.XYs, len(s.X))
	for i := range s.X {
		xys[i].X = s.X[i]
		xys[i].Y = s.Y[i]
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("render: build line: %w", err)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Add(plotter.NewGrid(), line)
	return p, nil
}

// SavePNG writes the plot to path, creating parent directories.
func SavePNG(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("render: create output dir: %w", err)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

// FileName derives a safe artifact file name from a figure name.
func FileName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "figure.png"
	}
	return b.String() + ".png"
}

// Package specfile loads the YAML figure specifications the plot driver
// renders. Absent a spec file, Default returns the built-in demo list.
package specfile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tveita/femctl/internal/expr"
)

const (
	DefaultCells = 100
	DefaultEps   = 1e-8
)

// Domain describes the interval a figure is evaluated over. Eps shrinks both
// endpoints inward, which keeps functions singular at the boundary finite.
type Domain struct {
	Cells int
	A     float64
	B     float64
	Eps   float64
}

// Resolve applies the epsilon offset and returns the effective bounds.
func (d Domain) Resolve() (a, b float64) {
	return d.A + d.Eps, d.B - d.Eps
}

// Figure is one plot: a named function of x over a domain.
type Figure struct {
	Name   string
	Fn     string
	Order  int
	Domain Domain
}

// Title matches the figure headings the demo list uses, e.g. "cos" or
// "bessel_J(0, x)".
func (f Figure) Title() string {
	if f.Fn == "bessel_J" || f.Fn == "bessel_Y" {
		return fmt.Sprintf("%s(%d, x)", f.Fn, f.Order)
	}
	return f.Fn
}

type Spec struct {
	Figures []Figure
}

// Default returns the built-in figure list: the elementary functions over
// [-2, 2] and the boundary-singular ones over [0+eps, 1-eps].
func Default() Spec {
	wide := Domain{Cells: DefaultCells, A: -2, B: 2}
	unit := Domain{Cells: DefaultCells, A: 0, B: 1, Eps: DefaultEps}

	figures := []Figure{
		{Name: "cos", Fn: "cos", Domain: wide},
		{Name: "sin", Fn: "sin", Domain: wide},
		{Name: "tan", Fn: "tan", Domain: wide},
		{Name: "acos", Fn: "acos", Domain: unit},
		{Name: "asin", Fn: "asin", Domain: unit},
		{Name: "atan", Fn: "atan", Domain: unit},
		{Name: "exp", Fn: "exp", Domain: unit},
		{Name: "ln", Fn: "ln", Domain: unit},
		{Name: "sqrt", Fn: "sqrt", Domain: unit},
		{Name: "bessel_J0", Fn: "bessel_J", Order: 0, Domain: unit},
		{Name: "bessel_J1", Fn: "bessel_J", Order: 1, Domain: unit},
		{Name: "bessel_Y0", Fn: "bessel_Y", Order: 0, Domain: unit},
		{Name: "bessel_Y1", Fn: "bessel_Y", Order: 1, Domain: unit},
	}
	return Spec{Figures: figures}
}

type domainDTO struct {
	Cells *int     `yaml:"cells"`
	A     *float64 `yaml:"a"`
	B     *float64 `yaml:"b"`
	Eps   *float64 `yaml:"eps"`
}

type figureDTO struct {
	Name   string     `yaml:"name"`
	Fn     string     `yaml:"fn"`
	Order  int        `yaml:"order"`
	Domain *domainDTO `yaml:"domain"`
}

type specDTO struct {
	Figures []figureDTO `yaml:"figures"`
}

// Load reads and validates a spec file. Validation errors name the offending
// field and carry the file path.
func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("spec load failed (%s): %w", path, err)
	}

	var dto specDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return Spec{}, fmt.Errorf("spec parse failed (%s): %w", path, err)
	}
	if len(dto.Figures) == 0 {
		return Spec{}, fmt.Errorf("spec invalid (%s): figures: at least one figure required", path)
	}

	spec := Spec{Figures: make([]Figure, 0, len(dto.Figures))}
	for i, raw := range dto.Figures {
		fig, err := convertFigure(raw)
		if err != nil {
			return Spec{}, fmt.Errorf("spec invalid (%s): figures[%d].%w", path, i, err)
		}
		spec.Figures = append(spec.Figures, fig)
	}
	return spec, nil
}

func convertFigure(raw figureDTO) (Figure, error) {
	fn := strings.TrimSpace(raw.Fn)
	if fn == "" {
		return Figure{}, fmt.Errorf("fn: required")
	}
	if _, err := expr.Build(fn, raw.Order); err != nil {
		return Figure{}, fmt.Errorf("fn: %w", err)
	}

	fig := Figure{
		Name:  strings.TrimSpace(raw.Name),
		Fn:    fn,
		Order: raw.Order,
		Domain: Domain{
			Cells: DefaultCells,
			A:     -2,
			B:     2,
		},
	}
	if fig.Name == "" {
		fig.Name = defaultName(fn, raw.Order)
	}

	if raw.Domain != nil {
		if raw.Domain.Cells != nil {
			fig.Domain.Cells = *raw.Domain.Cells
		}
		if raw.Domain.A != nil {
			fig.Domain.A = *raw.Domain.A
		}
		if raw.Domain.B != nil {
			fig.Domain.B = *raw.Domain.B
		}
		if raw.Domain.Eps != nil {
			fig.Domain.Eps = *raw.Domain.Eps
		}
	}

	if fig.Domain.Cells < 1 {
		return Figure{}, fmt.Errorf("domain.cells: must be >= 1, got %d", fig.Domain.Cells)
	}
	if fig.Domain.Eps < 0 {
		return Figure{}, fmt.Errorf("domain.eps: must be >= 0, got %g", fig.Domain.Eps)
	}
	a, b := fig.Domain.Resolve()
	if b <= a {
		return Figure{}, fmt.Errorf("domain: degenerate interval [%g, %g]", a, b)
	}
	return fig, nil
}

func defaultName(fn string, order int) string {
	if fn == "bessel_J" || fn == "bessel_Y" {
		return fmt.Sprintf("%s%d", fn, order)
	}
	return fn
}

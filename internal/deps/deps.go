// Package deps computes the companion-package requirement set for a build,
// pinned to the discovered core library version.
package deps

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Requirement names one companion package. Pinned requirements track the core
// library version; the rest are accepted at any installed version.
type Requirement struct {
	Name string `toml:"name"`
	Pin  bool   `toml:"pin"`
}

// DefaultSet returns the requirement list the build driver ships with.
func DefaultSet() []Requirement {
	return []Requirement{
		{Name: "numpy"},
		{Name: "mpi4py"},
		{Name: "petsc4py"},
		{Name: "fenics-ffcx", Pin: true},
		{Name: "fenics-ufl", Pin: true},
	}
}

// Pinned is one resolved requirement line.
type Pinned struct {
	Name       string `toml:"name" json:"name"`
	Constraint string `toml:"constraint,omitempty" json:"constraint,omitempty"`
}

// PinTo resolves the set against a core library version. Every requirement
// marked Pin gets the constraint ">=<version>" verbatim.
func PinTo(set []Requirement, version string) ([]Pinned, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, fmt.Errorf("deps: empty core version")
	}
	out := make([]Pinned, 0, len(set))
	for i, req := range set {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return nil, fmt.Errorf("deps: requirement[%d] missing name", i)
		}
		p := Pinned{Name: name}
		if req.Pin {
			p.Constraint = ">=" + version
		}
		out = append(out, p)
	}
	return out, nil
}

// Render formats pinned requirements as requirements.txt lines.
func Render(pins []Pinned) string {
	var b strings.Builder
	for _, p := range pins {
		b.WriteString(p.Name)
		b.WriteString(p.Constraint)
		b.WriteByte('\n')
	}
	return b.String()
}

// Manifest is the TOML build manifest emitted next to the installed extension.
type Manifest struct {
	Package     string   `toml:"package"`
	Version     string   `toml:"version"`
	Requirement []Pinned `toml:"requirement"`
}

func NewManifest(pkg, version string, pins []Pinned) Manifest {
	return Manifest{Package: pkg, Version: version, Requirement: pins}
}

func (m Manifest) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("deps: encode manifest: %w", err)
	}
	return nil
}

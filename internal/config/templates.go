package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "build":
		return buildTemplate, nil
	case "plot":
		return plotTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const buildTemplate = `package = "dolfinx"
source_dir = "."
build_dir = "build/temp"
package_tree = "build/lib"
build_type = "Release"
jobs = 3
cmake_min_version = "3.1.0"
runs_dir = "runs"
cmake_args = []

[[requirements]]
name = "numpy"
pin = false

[[requirements]]
name = "mpi4py"
pin = false

[[requirements]]
name = "petsc4py"
pin = false

[[requirements]]
name = "fenics-ffcx"
pin = true

[[requirements]]
name = "fenics-ufl"
pin = true
`

const plotTemplate = `out_dir = "plots"
cells = 100
spec_file = ""
viewer = "xdg-open"
runs_dir = "runs"
`

// Package config owns femctl's TOML configuration surfaces.
//
// Ownership boundary:
// - build and plot driver configuration types with their defaults
// - partial-override loading and validation
// - config template generation for configgen
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// RequirementConfig overrides one entry of the companion requirement set.
type RequirementConfig struct {
	Name string `toml:"name"`
	Pin  bool   `toml:"pin"`
}

// BuildConfig drives buildctl.
type BuildConfig struct {
	Package      string
	SourceDir    string
	BuildDir     string
	PackageTree  string
	BuildType    string
	Jobs         int
	CMakeMin     string
	RunsDir      string
	ExtraArgs    []string
	Requirements []RequirementConfig
}

func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Package:     "dolfinx",
		SourceDir:   ".",
		BuildDir:    "build/temp",
		PackageTree: "build/lib",
		BuildType:   "Release",
		Jobs:        3,
		CMakeMin:    "3.1.0",
		RunsDir:     "runs",
	}
}

// PlotConfig drives plotctl.
type PlotConfig struct {
	OutDir   string
	Cells    int
	SpecFile string
	Viewer   string
	RunsDir  string
}

func DefaultPlotConfig() PlotConfig {
	return PlotConfig{
		OutDir:  "plots",
		Cells:   100,
		Viewer:  "xdg-open",
		RunsDir: "runs",
	}
}

type buildFileConfig struct {
	Package      string              `toml:"package"`
	SourceDir    string              `toml:"source_dir"`
	BuildDir     string              `toml:"build_dir"`
	PackageTree  string              `toml:"package_tree"`
	BuildType    string              `toml:"build_type"`
	Jobs         int                 `toml:"jobs"`
	CMakeMin     string              `toml:"cmake_min_version"`
	RunsDir      string              `toml:"runs_dir"`
	ExtraArgs    []string            `toml:"cmake_args"`
	Requirements []RequirementConfig `toml:"requirements"`
}

// LoadBuildConfig reads path over the defaults; only keys present in the file
// override.
func LoadBuildConfig(path string) (BuildConfig, error) {
	cfg := DefaultBuildConfig()

	var raw buildFileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return BuildConfig{}, fmt.Errorf("load build config: %w", err)
	}

	if meta.IsDefined("package") {
		cfg.Package = strings.TrimSpace(raw.Package)
	}
	if meta.IsDefined("source_dir") {
		cfg.SourceDir = strings.TrimSpace(raw.SourceDir)
	}
	if meta.IsDefined("build_dir") {
		cfg.BuildDir = strings.TrimSpace(raw.BuildDir)
	}
	if meta.IsDefined("package_tree") {
		cfg.PackageTree = strings.TrimSpace(raw.PackageTree)
	}
	if meta.IsDefined("build_type") {
		cfg.BuildType = strings.TrimSpace(raw.BuildType)
	}
	if meta.IsDefined("jobs") {
		cfg.Jobs = raw.Jobs
	}
	if meta.IsDefined("cmake_min_version") {
		cfg.CMakeMin = strings.TrimSpace(raw.CMakeMin)
	}
	if meta.IsDefined("runs_dir") {
		cfg.RunsDir = strings.TrimSpace(raw.RunsDir)
	}
	if meta.IsDefined("cmake_args") {
		cfg.ExtraArgs = raw.ExtraArgs
	}
	if meta.IsDefined("requirements") {
		cfg.Requirements = raw.Requirements
	}

	if err := ValidateBuildConfig(cfg); err != nil {
		return BuildConfig{}, err
	}
	return cfg, nil
}

func ValidateBuildConfig(cfg BuildConfig) error {
	if strings.TrimSpace(cfg.Package) == "" {
		return fmt.Errorf("build config missing package")
	}
	if strings.TrimSpace(cfg.SourceDir) == "" {
		return fmt.Errorf("build config missing source_dir")
	}
	if strings.TrimSpace(cfg.PackageTree) == "" {
		return fmt.Errorf("build config missing package_tree")
	}
	switch strings.ToLower(cfg.BuildType) {
	case "debug", "release":
	default:
		return fmt.Errorf("build config build_type must be Debug or Release, got %q", cfg.BuildType)
	}
	if cfg.Jobs < 1 {
		return fmt.Errorf("build config jobs must be >= 1, got %d", cfg.Jobs)
	}
	for i, req := range cfg.Requirements {
		if strings.TrimSpace(req.Name) == "" {
			return fmt.Errorf("requirements[%d] invalid: name is required", i)
		}
	}
	return nil
}

type plotFileConfig struct {
	OutDir   string `toml:"out_dir"`
	Cells    int    `toml:"cells"`
	SpecFile string `toml:"spec_file"`
	Viewer   string `toml:"viewer"`
	RunsDir  string `toml:"runs_dir"`
}

// LoadPlotConfig reads path over the defaults; only keys present in the file
// override.
func LoadPlotConfig(path string) (PlotConfig, error) {
	cfg := DefaultPlotConfig()

	var raw plotFileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return PlotConfig{}, fmt.Errorf("load plot config: %w", err)
	}

	if meta.IsDefined("out_dir") {
		cfg.OutDir = strings.TrimSpace(raw.OutDir)
	}
	if meta.IsDefined("cells") {
		cfg.Cells = raw.Cells
	}
	if meta.IsDefined("spec_file") {
		cfg.SpecFile = strings.TrimSpace(raw.SpecFile)
	}
	if meta.IsDefined("viewer") {
		cfg.Viewer = strings.TrimSpace(raw.Viewer)
	}
	if meta.IsDefined("runs_dir") {
		cfg.RunsDir = strings.TrimSpace(raw.RunsDir)
	}

	if err := ValidatePlotConfig(cfg); err != nil {
		return PlotConfig{}, err
	}
	return cfg, nil
}

func ValidatePlotConfig(cfg PlotConfig) error {
	if strings.TrimSpace(cfg.OutDir) == "" {
		return fmt.Errorf("plot config missing out_dir")
	}
	if cfg.Cells < 1 {
		return fmt.Errorf("plot config cells must be >= 1, got %d", cfg.Cells)
	}
	return nil
}

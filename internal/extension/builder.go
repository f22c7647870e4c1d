package extension

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tveita/femctl/internal/cmake"
	"github.com/tveita/femctl/internal/config"
	"github.com/tveita/femctl/internal/deps"
	"github.com/tveita/femctl/internal/pkgconf"
	"github.com/tveita/femctl/internal/runstore"
	"github.com/tveita/femctl/internal/tools"
)

// ManifestFile and RequirementsFile are written into the package tree next to
// the installed extension artifacts.
const (
	ManifestFile     = "manifest.toml"
	RequirementsFile = "requirements.txt"
)

var artifactPatterns = []string{"*.so", "*.dylib", "*.dll", "*.pyd"}

// Step records one build stage outcome.
type Step struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Detail     string `json:"detail,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// Report is the persisted outcome of one build run.
type Report struct {
	ID           string        `json:"id"`
	Package      string        `json:"package"`
	Version      string        `json:"version,omitempty"`
	BuildType    string        `json:"build_type"`
	StartedAt    time.Time     `json:"started_at"`
	EndedAt      time.Time     `json:"ended_at"`
	Steps        []Step        `json:"steps"`
	Requirements []deps.Pinned `json:"requirements,omitempty"`
	Artifacts    []string      `json:"artifacts,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// Builder drives one full extension build.
type Builder struct {
	Runner tools.CommandRunner
	Config config.BuildConfig

	// Store receives the build report; nil disables persistence.
	Store *runstore.Store

	// Driver overrides the cmake driver, for tests. Nil builds one from
	// Runner and Config.
	Driver *cmake.Driver

	now func() time.Time
}

func NewBuilder(runner tools.CommandRunner, cfg config.BuildConfig, store *runstore.Store) *Builder {
	return &Builder{Runner: runner, Config: cfg, Store: store, now: time.Now}
}

// Run executes the build pipeline. The report is returned (and saved, when a
// store is configured) whether or not the build succeeded.
func (b *Builder) Run(ctx context.Context) (Report, error) {
	if b.now == nil {
		b.now = time.Now
	}
	cfg := b.Config
	report := Report{
		ID:        runstore.NewID(),
		Package:   cfg.Package,
		BuildType: cfg.BuildType,
		StartedAt: b.now().UTC(),
	}

	err := b.pipeline(ctx, &report)
	report.EndedAt = b.now().UTC()
	if err != nil {
		report.Error = err.Error()
	}
	b.save(&report)
	if err != nil {
		return report, err
	}
	log.Info().
		Str("run", report.ID).
		Str("package", report.Package).
		Str("version", report.Version).
		Int("artifacts", len(report.Artifacts)).
		Msg("extension build complete")
	return report, nil
}

func (b *Builder) pipeline(ctx context.Context, report *Report) error {
	cfg := b.Config

	pkgTree, err := filepath.Abs(cfg.PackageTree)
	if err != nil {
		return fmt.Errorf("resolve package tree: %w", err)
	}

	var info pkgconf.Info
	if err := b.step(report, "probe", func() error {
		var perr error
		info, perr = pkgconf.Probe(ctx, b.Runner, cfg.Package)
		return perr
	}); err != nil {
		return err
	}
	report.Version = info.Version
	log.Info().Str("package", cfg.Package).Str("version", info.Version).Msg("core library discovered")

	if err := b.step(report, "requirements", func() error {
		pins, perr := deps.PinTo(b.requirementSet(), info.Version)
		if perr != nil {
			return perr
		}
		report.Requirements = pins
		return b.writeRequirements(pkgTree, info.Version, pins)
	}); err != nil {
		return err
	}

	driver := b.driver()
	if err := b.step(report, "cmake", func() error {
		version, derr := driver.Check(ctx)
		if derr != nil {
			return derr
		}
		log.Debug().Str("version", version).Msg("cmake detected")
		return nil
	}); err != nil {
		return err
	}

	opts := cmake.Options{
		SourceDir:   cfg.SourceDir,
		BuildDir:    cfg.BuildDir,
		OutputDir:   pkgTree,
		BuildType:   cfg.BuildType,
		Jobs:        cfg.Jobs,
		ExtraArgs:   cfg.ExtraArgs,
		VersionInfo: info.Version,
	}
	if err := b.step(report, "configure", func() error {
		return driver.Configure(ctx, opts)
	}); err != nil {
		return err
	}
	if err := b.step(report, "build", func() error {
		return driver.Build(ctx, opts)
	}); err != nil {
		return err
	}

	return b.step(report, "install", func() error {
		artifacts, ierr := collectArtifacts(pkgTree)
		if ierr != nil {
			return ierr
		}
		if len(artifacts) == 0 {
			return fmt.Errorf("no extension artifact produced under %s", pkgTree)
		}
		report.Artifacts = artifacts
		return nil
	})
}

func (b *Builder) step(report *Report, name string, fn func() error) error {
	started := b.now()
	err := fn()
	entry := Step{
		Name:       name,
		Status:     "ok",
		DurationMS: b.now().Sub(started).Milliseconds(),
	}
	if err != nil {
		entry.Status = "failed"
		entry.Detail = err.Error()
		report.Steps = append(report.Steps, entry)
		return fmt.Errorf("%s: %w", name, err)
	}
	report.Steps = append(report.Steps, entry)
	return nil
}

func (b *Builder) driver() *cmake.Driver {
	if b.Driver != nil {
		return b.Driver
	}
	d := cmake.NewDriver(b.Runner)
	if b.Config.CMakeMin != "" {
		d.MinVersion = b.Config.CMakeMin
	}
	return d
}

func (b *Builder) requirementSet() []deps.Requirement {
	if len(b.Config.Requirements) == 0 {
		return deps.DefaultSet()
	}
	set := make([]deps.Requirement, 0, len(b.Config.Requirements))
	for _, rc := range b.Config.Requirements {
		set = append(set, deps.Requirement{Name: rc.Name, Pin: rc.Pin})
	}
	return set
}

func (b *Builder) writeRequirements(pkgTree, version string, pins []deps.Pinned) error {
	if err := os.MkdirAll(pkgTree, 0o755); err != nil {
		return fmt.Errorf("create package tree: %w", err)
	}

	manifestPath := filepath.Join(pkgTree, ManifestFile)
	f, err := os.Create(manifestPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", manifestPath, err)
	}
	defer f.Close()
	if err := deps.NewManifest(b.Config.Package, version, pins).Encode(f); err != nil {
		return err
	}

	reqPath := filepath.Join(pkgTree, RequirementsFile)
	if err := os.WriteFile(reqPath, []byte(deps.Render(pins)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", reqPath, err)
	}
	return nil
}

func collectArtifacts(pkgTree string) ([]string, error) {
	var out []string
	for _, pattern := range artifactPatterns {
		matches, err := filepath.Glob(filepath.Join(pkgTree, pattern))
		if err != nil {
			return nil, fmt.Errorf("scan package tree: %w", err)
		}
		out = append(out, matches...)
	}
	sort.Strings(out)
	return out, nil
}

func (b *Builder) save(report *Report) {
	if b.Store == nil {
		return
	}
	path, err := b.Store.Save("build", report.ID, report)
	if err != nil {
		log.Warn().Err(err).Msg("build report not saved")
		return
	}
	log.Debug().Str("path", path).Msg("build report saved")
}

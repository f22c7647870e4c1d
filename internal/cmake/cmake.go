// Package cmake drives the external CMake toolchain for native extension
// builds.
//
// Ownership boundary:
// - cmake presence and version detection
// - configure/build argument assembly
// - compiler flag environment augmentation
package cmake

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tveita/femctl/internal/tools"
)

// ErrToolMissing means cmake is not installed on the host.
var ErrToolMissing = errors.New("cmake must be installed to build native extensions")

// DefaultMinVersion is the floor for the Visual Studio generators.
const DefaultMinVersion = "3.1.0"

var versionRe = regexp.MustCompile(`version\s*([\d.]+)`)

// Options describes one configure+build cycle.
type Options struct {
	SourceDir string
	BuildDir  string
	OutputDir string // CMAKE_LIBRARY_OUTPUT_DIRECTORY
	BuildType string // Debug or Release
	Jobs      int
	ExtraArgs []string

	// VersionInfo, when set, is stamped into CXXFLAGS as -DVERSION_INFO.
	VersionInfo string
}

// Driver runs cmake through a CommandRunner. GOOS and Is64Bit are injectable
// so platform-specific argument assembly is testable everywhere.
type Driver struct {
	Runner     tools.CommandRunner
	MinVersion string
	GOOS       string
	Is64Bit    bool
}

func NewDriver(runner tools.CommandRunner) *Driver {
	return &Driver{
		Runner:     runner,
		MinVersion: DefaultMinVersion,
		GOOS:       runtime.GOOS,
		Is64Bit:    strconv.IntSize == 64,
	}
}

// Detect returns the installed cmake version, or ErrToolMissing.
func Detect(ctx context.Context, runner tools.CommandRunner) (string, error) {
	stdout, _, _, err := runner.Run(ctx, "cmake", "--version")
	if err != nil {
		if tools.IsNotInstalled(err) {
			return "", ErrToolMissing
		}
		return "", fmt.Errorf("cmake --version: %w", err)
	}
	m := versionRe.FindStringSubmatch(string(stdout))
	if m == nil {
		return "", fmt.Errorf("cmake --version: unrecognized output %q", firstLine(string(stdout)))
	}
	return strings.Trim(m[1], "."), nil
}

// Check detects cmake and enforces the minimum version on Windows; only the
// Visual Studio generators need the gate.
func (d *Driver) Check(ctx context.Context) (string, error) {
	version, err := Detect(ctx, d.Runner)
	if err != nil {
		return "", err
	}
	min := d.MinVersion
	if min == "" {
		min = DefaultMinVersion
	}
	if d.GOOS == "windows" && CompareVersions(version, min) < 0 {
		return "", fmt.Errorf("cmake >= %s is required on windows, found %s", min, version)
	}
	return version, nil
}

// Configure runs the cmake configure step inside opts.BuildDir, creating the
// directory if needed.
func (d *Driver) Configure(ctx context.Context, opts Options) error {
	if opts.SourceDir == "" {
		return fmt.Errorf("cmake: configure requires a source dir")
	}
	if err := os.MkdirAll(opts.BuildDir, 0o755); err != nil {
		return fmt.Errorf("cmake: create build dir: %w", err)
	}
	args := append([]string{opts.SourceDir}, d.configureArgs(opts)...)
	log.Debug().Str("dir", opts.BuildDir).Strs("args", args).Msg("cmake configure")
	return d.run(ctx, opts, "configure", args)
}

// Build runs the cmake build step inside opts.BuildDir.
func (d *Driver) Build(ctx context.Context, opts Options) error {
	args := append([]string{"--build", "."}, d.buildArgs(opts)...)
	log.Debug().Str("dir", opts.BuildDir).Strs("args", args).Msg("cmake build")
	return d.run(ctx, opts, "build", args)
}

func (d *Driver) run(ctx context.Context, opts Options, step string, args []string) error {
	env := BuildEnv(os.Environ(), opts.VersionInfo)
	_, stderr, code, err := d.Runner.RunIn(ctx, opts.BuildDir, env, "cmake", args...)
	if err != nil {
		if tools.IsNotInstalled(err) {
			return ErrToolMissing
		}
		detail := strings.TrimSpace(string(stderr))
		if detail != "" {
			return fmt.Errorf("cmake %s failed (exit %d): %s", step, code, firstLine(detail))
		}
		return fmt.Errorf("cmake %s failed (exit %d): %w", step, code, err)
	}
	return nil
}

func (d *Driver) configureArgs(opts Options) []string {
	cfg := buildType(opts)
	args := []string{"-DCMAKE_LIBRARY_OUTPUT_DIRECTORY=" + opts.OutputDir}
	if d.GOOS == "windows" {
		args = append(args, fmt.Sprintf("-DCMAKE_LIBRARY_OUTPUT_DIRECTORY_%s=%s",
			strings.ToUpper(cfg), opts.OutputDir))
		if d.Is64Bit {
			args = append(args, "-A", "x64")
		}
	} else {
		args = append(args, "-DCMAKE_BUILD_TYPE="+cfg)
	}
	return append(args, opts.ExtraArgs...)
}

func (d *Driver) buildArgs(opts Options) []string {
	args := []string{"--config", buildType(opts)}
	if d.GOOS == "windows" {
		return append(args, "--", "/m")
	}
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 3
	}
	return append(args, "--", "-j"+strconv.Itoa(jobs))
}

// BuildEnv copies base and appends the version stamp to CXXFLAGS.
func BuildEnv(base []string, versionInfo string) []string {
	if versionInfo == "" {
		return base
	}
	stamp := fmt.Sprintf(`-DVERSION_INFO=\"%s\"`, versionInfo)
	env := make([]string, 0, len(base)+1)
	found := false
	for _, kv := range base {
		if v, ok := strings.CutPrefix(kv, "CXXFLAGS="); ok {
			found = true
			kv = "CXXFLAGS=" + strings.TrimSpace(v+" "+stamp)
		}
		env = append(env, kv)
	}
	if !found {
		env = append(env, "CXXFLAGS="+stamp)
	}
	return env
}

// CompareVersions compares dotted numeric versions loosely: missing
// components count as zero, non-numeric components compare as strings.
func CompareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := component(as, i), component(bs, i)
		ai, aerr := strconv.Atoi(av)
		bi, berr := strconv.Atoi(bv)
		if aerr == nil && berr == nil {
			if ai != bi {
				return sign(ai - bi)
			}
			continue
		}
		if c := strings.Compare(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

func component(parts []string, i int) string {
	if i >= len(parts) || parts[i] == "" {
		return "0"
	}
	return parts[i]
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func buildType(opts Options) string {
	if strings.EqualFold(opts.BuildType, "debug") {
		return "Debug"
	}
	return "Release"
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

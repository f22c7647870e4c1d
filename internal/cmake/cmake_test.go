package cmake

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tveita/femctl/internal/testutil/script"
	"github.com/tveita/femctl/internal/testutil/testlog"
)

func TestDetect(t *testing.T) {
	testlog.Start(t)
	runner := &script.Runner{Replies: map[string]script.Response{
		"cmake --version": {Stdout: "cmake version 3.28.1\n\nCMake suite maintained and supported by Kitware.\n"},
	}}

	version, err := Detect(context.Background(), runner)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if version != "3.28.1" {
		t.Fatalf("unexpected version: %q", version)
	}
}

func TestDetectMissing(t *testing.T) {
	runner := &script.Runner{Replies: map[string]script.Response{
		"cmake --version": {Code: 127, Err: &exec.Error{Name: "cmake", Err: exec.ErrNotFound}},
	}}

	_, err := Detect(context.Background(), runner)
	if !errors.Is(err, ErrToolMissing) {
		t.Fatalf("expected ErrToolMissing, got %v", err)
	}
}

func TestDetectGarbageOutput(t *testing.T) {
	runner := &script.Runner{Replies: map[string]script.Response{
		"cmake --version": {Stdout: "not a cmake banner"},
	}}

	if _, err := Detect(context.Background(), runner); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"3.1.0", "3.1.0", 0},
		{"3.1", "3.1.0", 0},
		{"3.0.2", "3.1.0", -1},
		{"3.10.0", "3.9.4", 1},
		{"3.28.1", "3.1.0", 1},
		{"2.8.12.2", "3.1.0", -1},
		{"3.1.0", "3.1.0.1", -1},
	}
	for _, tc := range cases {
		if got := CompareVersions(tc.a, tc.b); got != tc.want {
			t.Fatalf("CompareVersions(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCheckWindowsMinimum(t *testing.T) {
	runner := &script.Runner{Replies: map[string]script.Response{
		"cmake --version": {Stdout: "cmake version 2.8.12"},
	}}
	d := NewDriver(runner)
	d.GOOS = "windows"

	if _, err := d.Check(context.Background()); err == nil {
		t.Fatalf("expected minimum version error")
	}

	d.GOOS = "linux"
	if _, err := d.Check(context.Background()); err != nil {
		t.Fatalf("linux should not gate version: %v", err)
	}
}

func TestConfigureArgsLinux(t *testing.T) {
	d := NewDriver(nil)
	d.GOOS = "linux"
	args := d.configureArgs(Options{OutputDir: "/pkg/tree", BuildType: "debug", ExtraArgs: []string{"-DFOO=1"}})

	want := []string{
		"-DCMAKE_LIBRARY_OUTPUT_DIRECTORY=/pkg/tree",
		"-DCMAKE_BUILD_TYPE=Debug",
		"-DFOO=1",
	}
	if strings.Join(args, " ") != strings.Join(want, " ") {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestConfigureArgsWindows(t *testing.T) {
	d := NewDriver(nil)
	d.GOOS = "windows"
	d.Is64Bit = true
	args := d.configureArgs(Options{OutputDir: `C:\pkg`, BuildType: "Release"})

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, `-DCMAKE_LIBRARY_OUTPUT_DIRECTORY_RELEASE=C:\pkg`) {
		t.Fatalf("missing per-config output dir: %v", args)
	}
	if !strings.Contains(joined, "-A x64") {
		t.Fatalf("missing x64 platform: %v", args)
	}
	if strings.Contains(joined, "CMAKE_BUILD_TYPE") {
		t.Fatalf("build type flag should be unix-only: %v", args)
	}
}

func TestBuildArgs(t *testing.T) {
	d := NewDriver(nil)
	d.GOOS = "linux"
	if got := strings.Join(d.buildArgs(Options{Jobs: 8}), " "); got != "--config Release -- -j8" {
		t.Fatalf("unexpected args: %q", got)
	}
	if got := strings.Join(d.buildArgs(Options{}), " "); got != "--config Release -- -j3" {
		t.Fatalf("unexpected default jobs: %q", got)
	}

	d.GOOS = "windows"
	if got := strings.Join(d.buildArgs(Options{BuildType: "Debug"}), " "); got != "--config Debug -- /m" {
		t.Fatalf("unexpected windows args: %q", got)
	}
}

func TestBuildEnv(t *testing.T) {
	env := BuildEnv([]string{"PATH=/usr/bin", "CXXFLAGS=-O2"}, "0.8.0")
	var cxx string
	for _, kv := range env {
		if v, ok := strings.CutPrefix(kv, "CXXFLAGS="); ok {
			cxx = v
		}
	}
	if cxx != `-O2 -DVERSION_INFO=\"0.8.0\"` {
		t.Fatalf("unexpected CXXFLAGS: %q", cxx)
	}

	env = BuildEnv([]string{"PATH=/usr/bin"}, "0.8.0")
	if env[len(env)-1] != `CXXFLAGS=-DVERSION_INFO=\"0.8.0\"` {
		t.Fatalf("expected CXXFLAGS appended, got %v", env)
	}

	base := []string{"PATH=/usr/bin"}
	if got := BuildEnv(base, ""); len(got) != 1 {
		t.Fatalf("empty stamp should leave env alone: %v", got)
	}
}

func TestConfigureRunsInBuildDir(t *testing.T) {
	build := filepath.Join(t.TempDir(), "build", "temp")
	src := "/src/ext"
	runner := &script.Runner{Replies: map[string]script.Response{
		"cmake " + src: {},
	}}
	d := NewDriver(runner)
	d.GOOS = "linux"

	err := d.Configure(context.Background(), Options{
		SourceDir: src,
		BuildDir:  build,
		OutputDir: "/pkg/tree",
	})
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if !runner.Called("cmake " + src) {
		t.Fatalf("configure not invoked: %v", runner.Calls)
	}
}

func TestBuildFailureCarriesStderr(t *testing.T) {
	runner := &script.Runner{Replies: map[string]script.Response{
		"cmake --build": {Stderr: "ninja: error: loading build.ninja", Code: 1, Err: errors.New("exit status 1")},
	}}
	d := NewDriver(runner)
	d.GOOS = "linux"

	err := d.Build(context.Background(), Options{BuildDir: t.TempDir()})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "ninja: error") {
		t.Fatalf("expected stderr detail, got %v", err)
	}
}

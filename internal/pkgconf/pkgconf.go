// Package pkgconf discovers installed native libraries through pkg-config.
//
// Ownership boundary:
// - pkg-config invocation and flag-line parsing
// - version resolution for the core library
package pkgconf

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tveita/femctl/internal/tools"
)

// ErrToolMissing means pkg-config itself is not installed on the host.
var ErrToolMissing = errors.New("pkg-config must be installed to probe native libraries")

// Info describes one installed package as reported by pkg-config.
type Info struct {
	Pkg         string
	Version     string
	CFlags      []string
	IncludeDirs []string
	Macros      map[string]string
}

// Probe queries pkg-config for pkg and resolves its version.
//
// The version is taken from the <PKG>_VERSION preprocessor macro when the
// package exports one through its cflags, falling back to --modversion.
func Probe(ctx context.Context, runner tools.CommandRunner, pkg string) (Info, error) {
	pkg = strings.TrimSpace(pkg)
	if pkg == "" {
		return Info{}, fmt.Errorf("pkgconf: empty package name")
	}

	stdout, stderr, _, err := runner.Run(ctx, "pkg-config", "--cflags", pkg)
	if err != nil {
		if tools.IsNotInstalled(err) {
			return Info{}, ErrToolMissing
		}
		return Info{}, queryError("--cflags", pkg, stderr, err)
	}

	flags := strings.Fields(string(stdout))
	macros, includes := ParseCFlags(flags)

	info := Info{
		Pkg:         pkg,
		CFlags:      flags,
		IncludeDirs: includes,
		Macros:      macros,
	}

	if v, ok := macros[VersionMacro(pkg)]; ok && v != "" {
		info.Version = v
		return info, nil
	}

	stdout, stderr, _, err = runner.Run(ctx, "pkg-config", "--modversion", pkg)
	if err != nil {
		if tools.IsNotInstalled(err) {
			return Info{}, ErrToolMissing
		}
		return Info{}, queryError("--modversion", pkg, stderr, err)
	}
	info.Version = strings.TrimSpace(string(stdout))
	if info.Version == "" {
		return Info{}, fmt.Errorf("pkgconf: no version reported for %s", pkg)
	}
	return info, nil
}

func queryError(query, pkg string, stderr []byte, err error) error {
	detail := strings.TrimSpace(string(stderr))
	if detail != "" {
		return fmt.Errorf("pkg-config %s %s: %s: %w", query, pkg, detail, err)
	}
	return fmt.Errorf("pkg-config %s %s: %w", query, pkg, err)
}

// ParseCFlags splits a compiler flag list into preprocessor macros and
// include directories. Macro values keep everything after the first '=' with
// surrounding quotes stripped.
func ParseCFlags(flags []string) (map[string]string, []string) {
	macros := make(map[string]string)
	var includes []string
	for _, f := range flags {
		switch {
		case strings.HasPrefix(f, "-D"):
			body := f[len("-D"):]
			if body == "" {
				continue
			}
			name, value, found := strings.Cut(body, "=")
			if !found {
				macros[name] = ""
				continue
			}
			macros[name] = strings.Trim(value, `"'`)
		case strings.HasPrefix(f, "-I"):
			if dir := f[len("-I"):]; dir != "" {
				includes = append(includes, dir)
			}
		}
	}
	return macros, includes
}

// VersionMacro returns the macro name a package conventionally exports its
// version under, e.g. "dolfinx" -> "DOLFINX_VERSION".
func VersionMacro(pkg string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(pkg) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String() + "_VERSION"
}

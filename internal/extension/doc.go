// Package extension owns the native extension build orchestration.
//
// Ownership boundary:
// - version discovery via pkg-config
// - companion requirement pinning and manifest emission
// - CMake configure/build and artifact installation into the package tree
// - build report production
//
// Extension does not compile anything itself; every build action goes through
// the external toolchain.
package extension

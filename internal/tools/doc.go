// Package tools provides reusable runtime helpers shared by the femctl commands.
//
// Ownership boundary:
// - command execution helpers
//
// - host/runtime utility primitives
package tools

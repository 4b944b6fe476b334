//go:build !debug

// Package debug provides invariant checks that are compiled in with the debug
// build tag and compile to no-ops otherwise. Wrap checks that are expensive to
// evaluate in `if debug.Enabled {...}`.
package debug

const Enabled = false

// Assert panics with message if b is false.
func Assert(b bool, message string) {}

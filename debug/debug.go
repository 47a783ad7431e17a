//go:build !debug

// Package debug gates internal consistency checks behind the debug build
// tag, so that release builds pay nothing for them.
package debug

const Debug = false

// Assert does nothing if debug flag is not provided
func Assert(condition bool, message ...string) {}

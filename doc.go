// Package symflow provides an interprocedural constraint instantiation engine for static bug finding.
//
// An upstream abstraction pass summarizes each compiled function into a
// symbolic contract (see [constraint.FunctionSummary]); symflow flattens the
// guarded transitive call graph of a chosen entry function into one
// self-contained, ordered constraint system for a downstream solver:
//   - alpha-renaming keeps every inlined call site in a disjoint variable namespace
//   - path conditions are conjoined through call boundaries
//   - a recursion guard bounds expansion to one unfolding per active path
//   - call-stack provenance localizes every emitted constraint
//
// See the instantiate package for the engine and the checks package for
// post-processing diagnostics over the flattened system.
package symflow

import (
	"github.com/blang/semver/v4"
)

var Version = semver.MustParse("0.3.0")

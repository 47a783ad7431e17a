// Package checks post-processes a flattened constraint system and emits
// diagnostics for a renderer.
package checks

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/symflow/symflow/constraint"
	"github.com/symflow/symflow/symbolic"
)

// CheckUnresolvedAssert is the configuration name of the unresolved-assert
// check.
const CheckUnresolvedAssert = "unresolved-assert"

// Warning is a non-fatal diagnostic attached to a source location.
// Location may be nil when the originating constraint carries none.
type Warning struct {
	Message  string
	Location *constraint.SourceLocation
}

func (w Warning) String() string {
	if w.Location == nil {
		return w.Message
	}
	return w.Location.String() + ": " + w.Message
}

// UnresolvedAsserts flags asserted constraints whose condition degenerated
// into an isolated boolean variable: a bare variable occurring nowhere else
// in the whole system means the abstraction pass failed to parse the
// original assert condition and replaced it with a fresh unknown.
//
// At most one warning is emitted per distinct source location.
func UnresolvedAsserts(cs []constraint.Constraint) []Warning {
	// pass 1: occurrence count per variable over the entire list,
	// including assuming clauses. Two bitsets stand in for a count map:
	// flagging only needs "exactly once" vs "more".
	seen := bitset.New(64)
	repeated := bitset.New(64)
	count := func(v symbolic.Var) (symbolic.Var, bool) {
		if seen.Test(uint(v.ID)) {
			repeated.Set(uint(v.ID))
		} else {
			seen.Set(uint(v.ID))
		}
		return v, false
	}
	for _, c := range cs {
		switch c := c.(type) {
		case constraint.Predicate:
			symbolic.RenameBool(c.Cond, count)
			symbolic.RenameBool(c.Assuming, count)
		case constraint.Call:
			for _, a := range c.Args {
				symbolic.Rename(a, count)
			}
			if c.Result != nil {
				count(*c.Result)
			}
			symbolic.RenameBool(c.Assuming, count)
		}
	}

	// pass 2: flag asserted bare-variable conditions used exactly once
	var warnings []Warning
	reported := make(map[constraint.SourceLocation]struct{})
	for _, c := range cs {
		p, ok := c.(constraint.Predicate)
		if !ok || p.Origin != constraint.Asserted {
			continue
		}
		bv, ok := p.Cond.(symbolic.BoolVar)
		if !ok {
			continue
		}
		if repeated.Test(uint(bv.V.ID)) {
			continue
		}
		loc := p.Stack.Innermost()
		if loc == nil {
			continue
		}
		if _, dup := reported[*loc]; dup {
			continue
		}
		reported[*loc] = struct{}{}
		warnings = append(warnings, Warning{
			Message:  "failed to parse the assert condition",
			Location: loc,
		})
	}

	return warnings
}

// Package constraint defines the data model the instantiation engine works
// on: per-function symbolic summaries, the two constraint shapes, the
// shared call-stack provenance chain and the serialized system format.
package constraint

import (
	"fmt"
	"strings"

	"github.com/symflow/symflow/symbolic"
)

// Origin tags how a constraint came to be. Asserted marks constraints
// genuinely derived from a source-level assertion; everything the
// abstraction or the instantiation derives automatically is Implied. The
// unresolved-assert detector keys off this tag.
type Origin uint8

const (
	Implied Origin = iota
	Asserted
)

func (o Origin) String() string {
	if o == Asserted {
		return "asserted"
	}
	return "implied"
}

// Constraint is one element of a function summary or of a flattened
// system. It is either a Predicate or a Call.
type Constraint interface {
	fmt.Stringer
	// Trace returns the provenance chain of the constraint.
	Trace() *CallStack
	constraint()
}

func (Predicate) constraint() {}
func (Call) constraint()      {}

// Predicate is a standalone fact: Cond must hold whenever Assuming holds.
type Predicate struct {
	Cond     symbolic.BoolExpr
	Assuming symbolic.BoolExpr
	Origin   Origin
	Stack    *CallStack
}

func (c Predicate) Trace() *CallStack { return c.Stack }

func (c Predicate) String() string {
	var sbb strings.Builder
	sbb.WriteString(c.Origin.String())
	sbb.WriteByte(' ')
	sbb.WriteString(c.Cond.String())
	if !symbolic.IsTrue(c.Assuming) {
		sbb.WriteString(" assuming ")
		sbb.WriteString(c.Assuming.String())
	}
	if loc := c.Stack.Innermost(); loc != nil {
		sbb.WriteString(" @ ")
		sbb.WriteString(loc.String())
	}
	return sbb.String()
}

// Call records that, at this point in the body, Callee was invoked. Args
// holds one entry per actual argument, nil where the caller placed no
// useful constraint on that position. Result, when non-nil, is the
// variable the call's return value was bound to.
type Call struct {
	Callee   string
	Args     []symbolic.Expr
	Result   *symbolic.Var
	Assuming symbolic.BoolExpr
	Stack    *CallStack
}

func (c Call) Trace() *CallStack { return c.Stack }

func (c Call) String() string {
	var sbb strings.Builder
	if c.Result != nil {
		sbb.WriteString(c.Result.String())
		sbb.WriteString(" = ")
	}
	sbb.WriteString(c.Callee)
	sbb.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			sbb.WriteString(", ")
		}
		if a == nil {
			sbb.WriteByte('_')
		} else {
			sbb.WriteString(a.String())
		}
	}
	sbb.WriteByte(')')
	if !symbolic.IsTrue(c.Assuming) {
		sbb.WriteString(" assuming ")
		sbb.WriteString(c.Assuming.String())
	}
	if loc := c.Stack.Innermost(); loc != nil {
		sbb.WriteString(" @ ")
		sbb.WriteString(loc.String())
	}
	return sbb.String()
}

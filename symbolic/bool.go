package symbolic

import "fmt"

// BoolExpr represents a symbolic boolean expression.
type BoolExpr interface {
	fmt.Stringer
	boolExpr()
}

func (BoolVar) boolExpr()   {}
func (BoolConst) boolExpr() {}
func (Not) boolExpr()       {}
func (And) boolExpr()       {}
func (Or) boolExpr()        {}
func (Cmp) boolExpr()       {}
func (BoolEq) boolExpr()    {}

// BoolVar is a boolean-typed Var leaf.
type BoolVar struct {
	V Var
}

func (b BoolVar) String() string { return b.V.String() }

// BoolConst is a boolean literal.
type BoolConst struct {
	Value bool
}

func (b BoolConst) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// True is the always-satisfied path condition.
var True BoolExpr = BoolConst{Value: true}

// Not negates a boolean expression.
type Not struct {
	X BoolExpr
}

func (b Not) String() string { return fmt.Sprintf("(not %s)", b.X) }

// And is the conjunction of two boolean expressions.
type And struct {
	A BoolExpr
	B BoolExpr
}

func (b And) String() string { return fmt.Sprintf("(and %s %s)", b.A, b.B) }

// Or is the disjunction of two boolean expressions.
type Or struct {
	A BoolExpr
	B BoolExpr
}

func (b Or) String() string { return fmt.Sprintf("(or %s %s)", b.A, b.B) }

// CmpOp enumerates comparison operators over expressions.
type CmpOp uint8

const (
	EQ CmpOp = iota
	NE
	LT
	LE
	GT
	GE
)

var cmpOps = [...]string{
	EQ: "eq",
	NE: "ne",
	LT: "lt",
	LE: "le",
	GT: "gt",
	GE: "ge",
}

func (op CmpOp) String() string {
	if int(op) < len(cmpOps) {
		return cmpOps[op]
	}
	return fmt.Sprintf("CmpOp<%d>", op)
}

// Cmp compares two arithmetic expressions.
type Cmp struct {
	Op  CmpOp
	LHS Expr
	RHS Expr
}

func (b Cmp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Op, b.LHS, b.RHS)
}

// BoolEq equates two boolean expressions.
type BoolEq struct {
	A BoolExpr
	B BoolExpr
}

func (b BoolEq) String() string { return fmt.Sprintf("(iff %s %s)", b.A, b.B) }

// Eq builds the equality constraint lhs == rhs over expressions.
func Eq(lhs, rhs Expr) BoolExpr {
	return Cmp{Op: EQ, LHS: lhs, RHS: rhs}
}

// EqBool builds the equality constraint a == b over booleans.
func EqBool(a, b BoolExpr) BoolExpr {
	return BoolEq{A: a, B: b}
}

// IsTrue reports whether b is the literal true.
func IsTrue(b BoolExpr) bool {
	c, ok := b.(BoolConst)
	return ok && c.Value
}

// NewAnd conjoins two boolean expressions, folding the true identity so
// that deeply nested path conditions stay readable.
func NewAnd(a, b BoolExpr) BoolExpr {
	if IsTrue(a) {
		return b
	}
	if IsTrue(b) {
		return a
	}
	return And{A: a, B: b}
}

// NewOr disjoins two boolean expressions, folding the false identity.
func NewOr(a, b BoolExpr) BoolExpr {
	if c, ok := a.(BoolConst); ok && !c.Value {
		return b
	}
	if c, ok := b.(BoolConst); ok && !c.Value {
		return a
	}
	return Or{A: a, B: b}
}

// NewNot negates a boolean expression, folding literals and double negation.
func NewNot(x BoolExpr) BoolExpr {
	switch x := x.(type) {
	case BoolConst:
		return BoolConst{Value: !x.Value}
	case Not:
		return x.X
	}
	return Not{X: x}
}

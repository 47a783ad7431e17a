// Package symbolic implements the expression algebra the instantiation
// engine operates on: typed symbolic variables, arithmetic expressions,
// boolean expressions and the renaming traversal used both for
// alpha-renaming at call boundaries and for occurrence counting.
package symbolic

import (
	"fmt"
	"strconv"
)

// Kind discriminates expression-typed from boolean-typed variables. An
// equality over booleans is a different constraint than one over
// expressions, so the two namespaces never mix.
type Kind uint8

const (
	KindExpr Kind = iota
	KindBool
)

func (k Kind) String() string {
	if k == KindBool {
		return "bool"
	}
	return "expr"
}

// Var is an opaque symbolic identifier. IDs are unique within one
// instantiation session across both kinds.
type Var struct {
	ID   uint64
	Kind Kind
}

func (v Var) String() string {
	if v.Kind == KindBool {
		return "b" + strconv.FormatUint(v.ID, 10)
	}
	return "e" + strconv.FormatUint(v.ID, 10)
}

// Expr represents a symbolic arithmetic expression.
type Expr interface {
	fmt.Stringer
	expr()
}

func (Variable) expr() {}
func (Const) expr()    {}
func (Binary) expr()   {}

// Variable is an expression-typed Var leaf.
type Variable struct {
	V Var
}

func (e Variable) String() string { return e.V.String() }

// Const is an integer literal.
type Const struct {
	Value int64
}

func (e Const) String() string { return strconv.FormatInt(e.Value, 10) }

// BinaryOp enumerates arithmetic operators.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Rem
)

var binaryOps = [...]string{
	Add: "add",
	Sub: "sub",
	Mul: "mul",
	Div: "div",
	Rem: "rem",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOps) {
		return binaryOps[op]
	}
	return fmt.Sprintf("BinaryOp<%d>", op)
}

// Binary is an operation on two expressions.
type Binary struct {
	Op  BinaryOp
	LHS Expr
	RHS Expr
}

func (e Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Op, e.LHS, e.RHS)
}

// NewBinary returns op(lhs, rhs), folding the constant case.
func NewBinary(op BinaryOp, lhs, rhs Expr) Expr {
	l, lok := lhs.(Const)
	r, rok := rhs.(Const)
	if lok && rok {
		switch op {
		case Add:
			return Const{Value: l.Value + r.Value}
		case Sub:
			return Const{Value: l.Value - r.Value}
		case Mul:
			return Const{Value: l.Value * r.Value}
		}
	}
	return Binary{Op: op, LHS: lhs, RHS: rhs}
}

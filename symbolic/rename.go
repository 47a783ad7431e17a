package symbolic

// RenameFunc rewrites a variable leaf. Returning false leaves the leaf
// structurally present; the traversal never fails on an unresolved leaf.
//
// The same traversal serves two callers: the instantiation engine renames
// every callee variable into a fresh namespace (f always rewrites), and the
// unresolved-assert detector counts occurrences with a no-op rewrite whose
// only effect is the count increment.
type RenameFunc func(Var) (Var, bool)

// Rename rewrites every variable leaf of e through f. A nil expression
// (an absent argument or return value) renames to nil.
func Rename(e Expr, f RenameFunc) Expr {
	switch e := e.(type) {
	case nil:
		return nil
	case Variable:
		if w, ok := f(e.V); ok {
			return Variable{V: w}
		}
		return e
	case Const:
		return e
	case Binary:
		return Binary{Op: e.Op, LHS: Rename(e.LHS, f), RHS: Rename(e.RHS, f)}
	default:
		panic("symbolic: unknown expression shape")
	}
}

// RenameBool rewrites every variable leaf of b through f.
func RenameBool(b BoolExpr, f RenameFunc) BoolExpr {
	switch b := b.(type) {
	case nil:
		return nil
	case BoolVar:
		if w, ok := f(b.V); ok {
			return BoolVar{V: w}
		}
		return b
	case BoolConst:
		return b
	case Not:
		return Not{X: RenameBool(b.X, f)}
	case And:
		return And{A: RenameBool(b.A, f), B: RenameBool(b.B, f)}
	case Or:
		return Or{A: RenameBool(b.A, f), B: RenameBool(b.B, f)}
	case Cmp:
		return Cmp{Op: b.Op, LHS: Rename(b.LHS, f), RHS: Rename(b.RHS, f)}
	case BoolEq:
		return BoolEq{A: RenameBool(b.A, f), B: RenameBool(b.B, f)}
	default:
		panic("symbolic: unknown boolean expression shape")
	}
}

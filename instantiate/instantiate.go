// Package instantiate flattens the guarded transitive call graph of an
// entry function into one ordered constraint list.
//
// Starting from a table of per-function summaries (constraint.Environment),
// the engine inlines callee summaries depth-first at every call site,
// alpha-renaming each expansion into a disjoint fresh-variable namespace,
// conjoining path conditions through call boundaries and wrapping every
// replayed constraint in a new provenance frame. Unknown callees and
// recursive re-entries on the same active path are treated as opaque: they
// produce no constraints and their results stay unconstrained.
package instantiate

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/symflow/symflow/constraint"
	"github.com/symflow/symflow/debug"
	"github.com/symflow/symflow/logger"
	"github.com/symflow/symflow/symbolic"
)

// instantiator performs all its work eagerly; it holds no state useful
// beyond the single query it was built for.
type instantiator struct {
	env constraint.Environment

	nextID      uint64
	active      map[string]struct{}
	constraints []constraint.Constraint

	log zerolog.Logger
}

func newInstantiator(env constraint.Environment) *instantiator {
	return &instantiator{
		env:    env,
		active: make(map[string]struct{}),
		log:    logger.Logger(),
	}
}

// fresh returns a variable never previously returned in this session.
func (ins *instantiator) fresh(kind symbolic.Kind) symbolic.Var {
	v := symbolic.Var{ID: ins.nextID, Kind: kind}
	ins.nextID++
	return v
}

func (ins *instantiator) emit(c constraint.Constraint) {
	ins.constraints = append(ins.constraints, c)
}

// scope is the lazily-filled alpha-renaming table of one callee expansion.
// The first lookup of a callee variable allocates a fresh one; later
// lookups of the same variable return the same fresh one, preserving
// aliasing inside the expansion. Two scopes never share fresh variables.
type scope struct {
	ins  *instantiator
	vars map[symbolic.Var]symbolic.Var
}

func (ins *instantiator) newScope() *scope {
	return &scope{ins: ins, vars: make(map[symbolic.Var]symbolic.Var)}
}

func (s *scope) rename(v symbolic.Var) (symbolic.Var, bool) {
	w, ok := s.vars[v]
	if !ok {
		w = s.ins.fresh(v.Kind)
		s.vars[v] = w
	}
	debug.Assert(w.Kind == v.Kind, "renaming changed variable kind")
	return w, true
}

func (s *scope) expr(e symbolic.Expr) symbolic.Expr {
	return symbolic.Rename(e, s.rename)
}

func (s *scope) boolExpr(b symbolic.BoolExpr) symbolic.BoolExpr {
	return symbolic.RenameBool(b, s.rename)
}

// apply inlines the summary of name, invoked with args under path at
// stack, appending the instantiated constraints to the running list. It
// returns the callee's renamed return expression, or nil when the callee
// is opaque (unknown, recursive on this path, or without a return value).
//
// len(args) must equal the callee's declared arity; positions the caller
// places no constraint on are nil.
func (ins *instantiator) apply(name string, args []symbolic.Expr, stack *constraint.CallStack, path symbolic.BoolExpr) symbolic.Expr {
	sum, ok := ins.env.Summary(name)
	if !ok {
		ins.log.Debug().Str("callee", name).Msg("unknown callee, treated as opaque")
		return nil
	}
	if _, expanding := ins.active[name]; expanding {
		ins.log.Debug().Str("callee", name).Msg("recursion cut")
		return nil
	}
	if len(args) != sum.NbArgs() {
		panic(fmt.Sprintf("instantiate %s: %d actual arguments, summary declares %d formals", name, len(args), sum.NbArgs()))
	}

	ins.active[name] = struct{}{}
	defer delete(ins.active, name)

	subst := ins.newScope()

	// bind formals to actuals where both sides carry a constraint
	for i, formal := range sum.Args {
		if formal == nil || args[i] == nil {
			continue
		}
		ins.emit(constraint.Predicate{
			Cond:     symbolic.Eq(subst.expr(formal), args[i]),
			Assuming: path,
			Origin:   constraint.Implied,
			Stack:    stack,
		})
	}

	// replay the body
	for _, c := range sum.Constraints {
		switch c := c.(type) {
		case constraint.Predicate:
			ins.emit(constraint.Predicate{
				Cond:     subst.boolExpr(c.Cond),
				Assuming: symbolic.NewAnd(subst.boolExpr(c.Assuming), path),
				Origin:   c.Origin,
				Stack:    constraint.NewFrame(c.Stack.Innermost(), stack),
			})

		case constraint.Call:
			callArgs := make([]symbolic.Expr, len(c.Args))
			for i, a := range c.Args {
				callArgs[i] = subst.expr(a)
			}
			assuming := symbolic.NewAnd(subst.boolExpr(c.Assuming), path)
			frame := constraint.NewFrame(c.Stack.Innermost(), stack)

			ret := ins.apply(c.Callee, callArgs, frame, assuming)
			if ret == nil || c.Result == nil {
				// opaque callee or uncaptured result: the result
				// variable stays unconstrained
				continue
			}
			result, _ := subst.rename(*c.Result)
			ins.emit(constraint.Predicate{
				Cond:     symbolic.Eq(symbolic.Variable{V: result}, ret),
				Assuming: assuming,
				Origin:   constraint.Implied,
				Stack:    frame,
			})

		default:
			panic(fmt.Sprintf("instantiate %s: unknown constraint shape %T", name, c))
		}
	}

	if sum.Ret == nil {
		return nil
	}
	return subst.expr(sum.Ret)
}

// Function flattens the call graph rooted at entry into one ordered
// constraint list. The entry function's parameters are free symbolic
// inputs: each formal gets an entirely fresh variable, bound by nothing.
//
// Output order is deterministic: depth-first, in the order call
// constraints appear within each summary.
func Function(entry string, env constraint.Environment) ([]constraint.Constraint, error) {
	sum, ok := env.Summary(entry)
	if !ok {
		return nil, fmt.Errorf("entry function %q not in environment", entry)
	}

	ins := newInstantiator(env)
	args := make([]symbolic.Expr, sum.NbArgs())
	for i := range args {
		args[i] = symbolic.Variable{V: ins.fresh(symbolic.KindExpr)}
	}
	ins.apply(entry, args, nil, symbolic.True)

	ins.log.Debug().Str("entry", entry).Int("nbConstraints", len(ins.constraints)).Msg("instantiated")
	return ins.constraints, nil
}

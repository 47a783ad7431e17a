package instantiate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/symflow/symflow/constraint"
	"github.com/symflow/symflow/instantiate"
	"github.com/symflow/symflow/symbolic"
)

// fixture variables live in the 100+ range so fresh session variables
// (allocated from 0) are easy to tell apart.
func evar(id uint64) symbolic.Expr {
	return symbolic.Variable{V: symbolic.Var{ID: id}}
}

func bvar(id uint64) symbolic.BoolExpr {
	return symbolic.BoolVar{V: symbolic.Var{ID: id, Kind: symbolic.KindBool}}
}

func loc(line int64) *constraint.SourceLocation {
	return &constraint.SourceLocation{File: "prog.c", Line: line}
}

func at(line int64) *constraint.CallStack {
	return constraint.NewFrame(loc(line), nil)
}

func TestArgumentBinding(t *testing.T) {
	assert := require.New(t)

	// callee constrains its first formal only; the caller supplies both
	// actuals. Exactly one equality for position 0, none for position 1.
	env := constraint.Environment{
		"main": {
			Constraints: []constraint.Constraint{
				constraint.Call{
					Callee:   "f",
					Args:     []symbolic.Expr{symbolic.Const{Value: 1}, symbolic.Const{Value: 2}},
					Assuming: symbolic.True,
					Stack:    at(10),
				},
			},
		},
		"f": {
			Args: []symbolic.Expr{evar(100), nil},
		},
	}

	cs, err := instantiate.Function("main", env)
	assert.NoError(err)

	want := []constraint.Constraint{
		constraint.Predicate{
			Cond:     symbolic.Eq(evar(0), symbolic.Const{Value: 1}),
			Assuming: symbolic.True,
			Origin:   constraint.Implied,
			Stack:    constraint.NewFrame(loc(10), nil),
		},
	}
	if diff := cmp.Diff(want, cs); diff != "" {
		t.Fatalf("constraint list mismatch (-want +got):\n%s", diff)
	}
}

func TestArgumentBindingSkipsUnconstrainedActual(t *testing.T) {
	assert := require.New(t)

	env := constraint.Environment{
		"main": {
			Constraints: []constraint.Constraint{
				constraint.Call{
					Callee:   "f",
					Args:     []symbolic.Expr{nil, nil},
					Assuming: symbolic.True,
					Stack:    at(10),
				},
			},
		},
		"f": {
			Args: []symbolic.Expr{evar(100), evar(101)},
		},
	}

	cs, err := instantiate.Function("main", env)
	assert.NoError(err)
	assert.Empty(cs, "no actual carries a constraint, nothing to bind")
}

func TestResultPropagation(t *testing.T) {
	assert := require.New(t)

	r := symbolic.Var{ID: 100}
	env := constraint.Environment{
		"main": {
			Constraints: []constraint.Constraint{
				constraint.Call{
					Callee:   "f",
					Result:   &r,
					Assuming: symbolic.True,
					Stack:    at(5),
				},
			},
		},
		"f": {
			Ret: symbolic.Const{Value: 7},
		},
	}

	cs, err := instantiate.Function("main", env)
	assert.NoError(err)
	assert.Len(cs, 1)

	p, ok := cs[0].(constraint.Predicate)
	assert.True(ok)
	assert.Equal(constraint.Implied, p.Origin)
	assert.Equal("(eq e0 7)", p.Cond.String())
	assert.Equal(1, p.Stack.Depth())
}

func TestResultPropagationOpaqueCallee(t *testing.T) {
	assert := require.New(t)

	r := symbolic.Var{ID: 100}
	env := constraint.Environment{
		"main": {
			Constraints: []constraint.Constraint{
				constraint.Call{
					Callee:   "external",
					Result:   &r,
					Assuming: symbolic.True,
					Stack:    at(5),
				},
			},
		},
	}

	cs, err := instantiate.Function("main", env)
	assert.NoError(err)
	assert.Empty(cs, "unknown callee: result stays unconstrained, no binding emitted")
}

func TestDirectRecursionTerminates(t *testing.T) {
	assert := require.New(t)

	x := symbolic.Var{ID: 100}
	env := constraint.Environment{
		"f": {
			Args: []symbolic.Expr{symbolic.Variable{V: x}},
			Constraints: []constraint.Constraint{
				constraint.Predicate{
					Cond:     symbolic.Cmp{Op: symbolic.GT, LHS: symbolic.Variable{V: x}, RHS: symbolic.Const{Value: 0}},
					Assuming: symbolic.True,
					Origin:   constraint.Asserted,
					Stack:    at(1),
				},
				constraint.Call{
					Callee:   "f",
					Args:     []symbolic.Expr{symbolic.Variable{V: x}},
					Assuming: symbolic.True,
					Stack:    at(2),
				},
			},
		},
	}

	cs, err := instantiate.Function("f", env)
	assert.NoError(err)

	// one binding of the root formal, one body assert; the self call is cut
	assert.Len(cs, 2)
	assert.Equal("(eq e1 e0)", cs[0].(constraint.Predicate).Cond.String())
	assert.Equal("(gt e1 0)", cs[1].(constraint.Predicate).Cond.String())
}

func TestMutualRecursionTerminates(t *testing.T) {
	assert := require.New(t)

	env := constraint.Environment{
		"g": {
			Constraints: []constraint.Constraint{
				constraint.Call{Callee: "h", Assuming: symbolic.True, Stack: at(3)},
			},
		},
		"h": {
			Constraints: []constraint.Constraint{
				constraint.Predicate{Cond: bvar(100), Assuming: symbolic.True, Origin: constraint.Asserted, Stack: at(4)},
				constraint.Call{Callee: "g", Assuming: symbolic.True, Stack: at(5)},
			},
		},
	}

	cs, err := instantiate.Function("g", env)
	assert.NoError(err)

	// h's body appears once; the nested g call is cut
	assert.Len(cs, 1)
	assert.Equal(2, cs[0].Trace().Depth())
}

func TestRecursionGuardClearsAcrossSiblingBranches(t *testing.T) {
	assert := require.New(t)

	// two sibling call sites to the same callee both expand; the guard
	// only cuts re-entry on one active path
	env := constraint.Environment{
		"main": {
			Constraints: []constraint.Constraint{
				constraint.Call{Callee: "f", Assuming: symbolic.True, Stack: at(1)},
				constraint.Call{Callee: "f", Assuming: symbolic.True, Stack: at(2)},
			},
		},
		"f": {
			Constraints: []constraint.Constraint{
				constraint.Predicate{Cond: bvar(100), Assuming: symbolic.True, Origin: constraint.Asserted, Stack: at(9)},
			},
		},
	}

	cs, err := instantiate.Function("main", env)
	assert.NoError(err)
	assert.Len(cs, 2, "both sibling sites expand independently")
}

func TestPathConditionConjunction(t *testing.T) {
	assert := require.New(t)

	env := constraint.Environment{
		"main": {
			Constraints: []constraint.Constraint{
				constraint.Call{Callee: "f", Assuming: bvar(200), Stack: at(1)},
			},
		},
		"f": {
			Constraints: []constraint.Constraint{
				constraint.Call{Callee: "g", Assuming: bvar(201), Stack: at(2)},
			},
		},
		"g": {
			Constraints: []constraint.Constraint{
				constraint.Predicate{Cond: bvar(202), Assuming: symbolic.True, Origin: constraint.Asserted, Stack: at(3)},
			},
		},
	}

	cs, err := instantiate.Function("main", env)
	assert.NoError(err)
	assert.Len(cs, 1)

	p := cs[0].(constraint.Predicate)
	// renaming order is deterministic: main's guard first, then f's
	assert.Equal("(and b1 b0)", p.Assuming.String(), "conjunction of every intermediate assuming clause, each independently renamed")
	assert.Equal("b2", p.Cond.String())
	assert.Equal(3, p.Stack.Depth())
	assert.Equal("prog.c:3", p.Stack.Innermost().String())
}

func TestSharedCallerFrame(t *testing.T) {
	assert := require.New(t)

	env := constraint.Environment{
		"main": {
			Constraints: []constraint.Constraint{
				constraint.Call{Callee: "f", Assuming: symbolic.True, Stack: at(1)},
			},
		},
		"f": {
			Constraints: []constraint.Constraint{
				constraint.Predicate{Cond: bvar(100), Assuming: symbolic.True, Origin: constraint.Asserted, Stack: at(2)},
				constraint.Predicate{Cond: bvar(101), Assuming: symbolic.True, Origin: constraint.Asserted, Stack: at(3)},
			},
		},
	}

	cs, err := instantiate.Function("main", env)
	assert.NoError(err)
	assert.Len(cs, 2)
	assert.Same(cs[0].Trace().Caller, cs[1].Trace().Caller, "constraints from one call site share the caller frame")
}

func TestAliasingPreservedWithinOneScope(t *testing.T) {
	assert := require.New(t)

	// the same callee variable renames to the same fresh variable within
	// one expansion
	x := symbolic.Var{ID: 100}
	env := constraint.Environment{
		"f": {
			Args: []symbolic.Expr{symbolic.Variable{V: x}},
			Constraints: []constraint.Constraint{
				constraint.Predicate{
					Cond:     symbolic.Eq(symbolic.Variable{V: x}, symbolic.NewBinary(symbolic.Add, symbolic.Variable{V: x}, symbolic.Const{Value: 0})),
					Assuming: symbolic.True,
					Origin:   constraint.Implied,
					Stack:    at(1),
				},
			},
		},
	}

	cs, err := instantiate.Function("f", env)
	assert.NoError(err)
	assert.Len(cs, 2)
	assert.Equal("(eq e1 (add e1 0))", cs[1].(constraint.Predicate).Cond.String())
}

func TestUnknownEntry(t *testing.T) {
	assert := require.New(t)

	_, err := instantiate.Function("nope", constraint.Environment{})
	assert.Error(err)
	assert.Contains(err.Error(), "nope")
}

func TestArityMismatchPanics(t *testing.T) {
	assert := require.New(t)

	env := constraint.Environment{
		"main": {
			Constraints: []constraint.Constraint{
				constraint.Call{
					Callee:   "f",
					Args:     []symbolic.Expr{symbolic.Const{Value: 1}},
					Assuming: symbolic.True,
					Stack:    at(1),
				},
			},
		},
		"f": {
			Args: []symbolic.Expr{evar(100), evar(101)},
		},
	}

	assert.Panics(func() {
		_, _ = instantiate.Function("main", env)
	})
}

func TestBatch(t *testing.T) {
	assert := require.New(t)

	env := constraint.Environment{
		"a": {
			Constraints: []constraint.Constraint{
				constraint.Predicate{Cond: bvar(100), Assuming: symbolic.True, Origin: constraint.Asserted, Stack: at(1)},
			},
		},
		"b": {
			Constraints: []constraint.Constraint{
				constraint.Call{Callee: "a", Assuming: symbolic.True, Stack: at(2)},
			},
		},
	}

	got, err := instantiate.Batch(env, []string{"a", "b", "a"})
	assert.NoError(err)
	assert.Len(got, 3)

	// each query owns its counter: outputs are namespace-independent and
	// reproducible
	wantA, err := instantiate.Function("a", env)
	assert.NoError(err)
	wantB, err := instantiate.Function("b", env)
	assert.NoError(err)
	assert.Equal(wantA, got[0])
	assert.Equal(wantB, got[1])
	assert.Equal(wantA, got[2])
}

func TestBatchUnknownEntry(t *testing.T) {
	assert := require.New(t)

	_, err := instantiate.Batch(constraint.Environment{}, []string{"nope"})
	assert.Error(err)
}

func TestFreshnessAcrossScopes(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	properties.Property("renaming scopes never share fresh variables", prop.ForAll(
		func(nbSites, arity int) bool {
			formals := make([]symbolic.Expr, arity)
			for i := range formals {
				formals[i] = evar(uint64(100 + i))
			}
			actuals := make([]symbolic.Expr, arity)
			for i := range actuals {
				actuals[i] = symbolic.Const{Value: int64(i)}
			}
			body := make([]constraint.Constraint, nbSites)
			for i := range body {
				body[i] = constraint.Call{Callee: "f", Args: actuals, Assuming: symbolic.True, Stack: at(int64(i))}
			}
			env := constraint.Environment{
				"main": {Constraints: body},
				"f":    {Args: formals},
			}

			cs, err := instantiate.Function("main", env)
			if err != nil || len(cs) != nbSites*arity {
				return false
			}
			seen := make(map[uint64]struct{})
			for _, c := range cs {
				v := c.(constraint.Predicate).Cond.(symbolic.Cmp).LHS.(symbolic.Variable).V
				if _, dup := seen[v.ID]; dup {
					return false
				}
				seen[v.ID] = struct{}{}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.IntRange(1, 4),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

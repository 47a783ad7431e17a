package constraint

import "github.com/symflow/symflow/symbolic"

// FunctionSummary is the abstracted contract of one function, produced by
// the upstream abstraction pass.
//
// Args holds one entry per formal parameter, position-significant; a nil
// entry means the abstraction derived no useful constraint for that
// parameter. Ret is the symbolic return value, nil when the function
// returns nothing the abstraction could describe. Constraints describe the
// body in order, including its calls to other functions.
type FunctionSummary struct {
	Args        []symbolic.Expr
	Ret         symbolic.Expr
	Constraints []Constraint
}

// NbArgs returns the declared arity of the summarized function. Callers
// applying the summary must supply exactly that many actual arguments.
func (s *FunctionSummary) NbArgs() int { return len(s.Args) }

// Environment maps function name to summary for one analyzed module. It is
// built once by the abstraction pass and only read during instantiation, so
// independent queries may share one Environment concurrently.
type Environment map[string]*FunctionSummary

// Summary looks up the summary of name. The second return value is false
// for unknown (external or unanalyzed) functions.
func (e Environment) Summary(name string) (*FunctionSummary, bool) {
	s, ok := e[name]
	return s, ok
}

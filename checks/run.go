package checks

import (
	"github.com/symflow/symflow/config"
	"github.com/symflow/symflow/constraint"
)

// Run applies every enabled check to a flattened constraint list.
func Run(cfg config.Config, cs []constraint.Constraint) []Warning {
	var warnings []Warning
	if cfg.Enabled(CheckUnresolvedAssert) {
		warnings = append(warnings, UnresolvedAsserts(cs)...)
	}
	return warnings
}

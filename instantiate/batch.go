package instantiate

import (
	"golang.org/x/sync/errgroup"

	"github.com/symflow/symflow/constraint"
)

// Batch runs one independent query per entry over a shared Environment.
// Each query owns its own fresh-variable counter, active-name set and
// output list, so the queries run concurrently; the Environment is only
// read. Results are indexed like entries. The first failing entry aborts
// the batch.
func Batch(env constraint.Environment, entries []string) ([][]constraint.Constraint, error) {
	results := make([][]constraint.Constraint, len(entries))

	var g errgroup.Group
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			cs, err := Function(entry, env)
			if err != nil {
				return err
			}
			results[i] = cs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

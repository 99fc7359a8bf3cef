package main

import (
	"fmt"
	"text/tabwriter"
	"time"
)

// RunsCmd lists stored discovery runs.
type RunsCmd struct{}

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs stored")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDOMAIN\tFOUND\tDEPTH\tFAILED\tCREATED")
	for _, run := range runs {
		var found, depth, failed int
		if run.Result != nil {
			found = run.Result.TotalFound
			depth = run.Result.MaxDepthReached
			failed = run.Result.FailureCount
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			run.ID, run.Domain, found, depth, failed,
			run.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

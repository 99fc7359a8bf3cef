package main

import (
	"fmt"
)

// ShowCmd prints a run's prioritized URL selection.
type ShowCmd struct {
	ID   string `arg:"" required:"" help:"Run ID"`
	URLs bool   `help:"Print the full discovered URL list instead of the selection"`
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s\n", run.ID)
	fmt.Fprintf(deps.Stdout, "  input: %s\n", run.InputURL)
	fmt.Fprintf(deps.Stdout, "  homepage: %s\n", run.Homepage)
	if run.Result != nil {
		fmt.Fprintf(deps.Stdout, "  discovered: %d (depth %d, %d failed)\n",
			run.Result.TotalFound, run.Result.MaxDepthReached, run.Result.FailureCount)
	}

	if c.URLs {
		if run.Result != nil {
			for _, u := range run.Result.URLs {
				fmt.Fprintln(deps.Stdout, u)
			}
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Selected %d URLs:\n", len(run.Selected))
	for _, sel := range run.Selected {
		fmt.Fprintf(deps.Stdout, "  [%s] %s\n", sel.Bucket, sel.URL)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/fwojciec/sitescout"
	"github.com/fwojciec/sitescout/gemini"
)

// AskCmd answers a question using a run's fetched pages as context.
type AskCmd struct {
	ID       string `arg:"" required:"" help:"Run ID"`
	Question string `arg:"" required:"" help:"Question to answer"`
}

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	pages, err := deps.Pages.FindPagesByRun(deps.Ctx, c.ID)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return sitescout.Errorf(sitescout.ENOTFOUND, "no pages fetched for run %q", c.ID)
	}

	llm, err := deps.NewLLM()
	if err != nil {
		return err
	}

	resp, err := llm.Generate(deps.Ctx, sitescout.LLMRequest{
		SystemPrompt: gemini.SystemPrompt,
		UserPrompt:   gemini.BuildRunPrompt(pages, c.Question),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, resp.Text)
	return nil
}

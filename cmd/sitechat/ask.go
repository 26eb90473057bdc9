package main

import (
	"fmt"

	"github.com/fwojciec/sitechat"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	record, err := deps.Chat.SendMessage(deps.Ctx, c.UserID, c.WebsiteID, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, record.Answer)
	if record.Degraded {
		fmt.Fprintln(deps.Stderr, "warning: the model could not be reached")
	}
	fmt.Fprintf(deps.Stderr, "(relevance %.2f, %dms)\n", record.RelevanceScore, record.ResponseTimeMs)
	return nil
}

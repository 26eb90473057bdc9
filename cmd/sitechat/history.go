package main

import (
	"fmt"

	"github.com/fwojciec/sitechat"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	page, err := deps.Chat.ListDialogue(deps.Ctx, c.UserID, c.WebsiteID, c.Page, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	if page.Total == 0 {
		fmt.Fprintln(deps.Stdout, "No dialogues found.")
		return nil
	}

	for _, r := range page.Records {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.WebsiteID)
		fmt.Fprintf(deps.Stdout, "  Q: %s\n", r.Question)
		fmt.Fprintf(deps.Stdout, "  A: %s\n", r.Answer)
	}
	fmt.Fprintf(deps.Stdout, "Page %d of %d (%d total)\n", page.Page, page.Pages, page.Total)
	return nil
}

package main

import (
	"fmt"

	"github.com/fwojciec/sitechat"
)

// Run executes the purge command.
func (c *PurgeCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return sitechat.Errorf(sitechat.EINVALID, "use --force to confirm deletion")
	}

	website, err := deps.Websites.FindWebsiteByID(deps.Ctx, c.WebsiteID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	if err := deps.Documents.DeleteDocumentsByWebsite(deps.Ctx, website.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted documents of %q\n", website.Name)
	return nil
}

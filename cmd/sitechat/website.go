package main

import (
	"fmt"

	"github.com/fwojciec/sitechat"
)

// Run executes the website add command.
func (c *WebsiteAddCmd) Run(deps *Dependencies) error {
	website := &sitechat.Website{
		Name:       c.Name,
		URL:        c.URL,
		IsActive:   true,
		CrawlDepth: c.Depth,
	}
	if err := deps.Websites.CreateWebsite(deps.Ctx, website); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added website %q (%s)\n", website.Name, website.ID)
	return nil
}

// Run executes the website list command.
func (c *WebsiteListCmd) Run(deps *Dependencies) error {
	websites, err := deps.Websites.FindWebsites(deps.Ctx, sitechat.WebsiteFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	if len(websites) == 0 {
		fmt.Fprintln(deps.Stdout, "No websites found. Use 'sitechat website add' to register one.")
		return nil
	}

	for _, w := range websites {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", w.ID, w.Name, w.URL, w.CrawlStatus)
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/sitechat"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	crawl := deps.Crawler.Crawl
	if c.Recrawl {
		crawl = deps.Crawler.Recrawl
	}

	report, err := crawl(deps.Ctx, c.WebsiteID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	printReport(deps.Stdout, report)
	if report.Status == sitechat.CrawlFailed {
		return fmt.Errorf("crawl failed: %s", report.FailureReason)
	}
	return nil
}

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	report, err := deps.Crawler.Status(deps.Ctx, c.WebsiteID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	printReport(deps.Stdout, report)
	return nil
}

func printReport(w io.Writer, report *sitechat.CrawlReport) {
	fmt.Fprintf(w, "Status:    %s\n", report.Status)
	if report.FailureReason != "" {
		fmt.Fprintf(w, "Reason:    %s\n", report.FailureReason)
	}
	if report.LastCrawledAt != nil {
		fmt.Fprintf(w, "Crawled:   %s\n", report.LastCrawledAt.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Documents: %d\n", report.DocumentCount)
}

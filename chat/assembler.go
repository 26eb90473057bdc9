// Package chat answers questions about crawled websites and records the
// resulting dialogue.
package chat

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.ContextAssembler = (*Assembler)(nil)

// Assembler builds context windows from a website's most recent documents.
type Assembler struct {
	Websites  sitechat.WebsiteService
	Documents sitechat.DocumentService

	// Budget is the character budget; sitechat.ContextBudget when zero.
	Budget int
}

// Assemble concatenates up to sitechat.ContextDocuments documents, most
// recent first, stopping at the first one that would exceed the budget.
// Documents are never truncated. Only a completed crawl supplies content;
// documents left over from an earlier crawl are ignored while the website
// is pending, crawling or failed.
func (a *Assembler) Assemble(ctx context.Context, websiteID string) (*sitechat.ContextWindow, error) {
	budget := a.Budget
	if budget <= 0 {
		budget = sitechat.ContextBudget
	}

	website, err := a.Websites.FindWebsiteByID(ctx, websiteID)
	if err != nil {
		return nil, fmt.Errorf("loading website: %w", err)
	}
	if website.CrawlStatus != sitechat.CrawlCompleted {
		return &sitechat.ContextWindow{}, nil
	}

	docs, err := a.Documents.FindDocuments(ctx, sitechat.DocumentFilter{
		WebsiteID: &websiteID,
		Limit:     sitechat.ContextDocuments,
	})
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}

	window := &sitechat.ContextWindow{HasContent: len(docs) > 0}

	var text []byte
	used := 0
	for _, doc := range docs {
		entry := FormatDocument(doc)
		n := utf8.RuneCountInString(entry)
		if used+n > budget {
			break
		}
		text = append(text, entry...)
		used += n
		window.Documents++
	}
	window.Text = string(text)

	return window, nil
}

// FormatDocument renders one document as a context window entry.
func FormatDocument(doc *sitechat.Document) string {
	return "Title: " + doc.Title + "\nContent: " + doc.Text + "\n\n"
}

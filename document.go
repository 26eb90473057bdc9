package sitechat

import (
	"context"
	"strings"
	"time"
)

// Extraction caps.
const (
	MaxImages = 50
	MaxLinks  = 100
)

// Document represents the extracted content of one crawled page.
// Documents are immutable once created; a recrawl replaces the set.
type Document struct {
	ID          string           `json:"id"`
	WebsiteID   string           `json:"websiteId"`
	SourceURL   string           `json:"sourceUrl"`
	Title       string           `json:"title"`
	Text        string           `json:"text"`
	Images      []string         `json:"images"`
	Links       []string         `json:"links"`
	Metadata    DocumentMetadata `json:"metadata"`
	WordCount   int              `json:"wordCount"`
	ContentHash string           `json:"contentHash"`
	Position    int              `json:"position"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// DocumentMetadata holds the page's descriptive meta tags.
type DocumentMetadata struct {
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Author      string   `json:"author"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.WebsiteID == "" {
		return Errorf(EINVALID, "document website ID required")
	}
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if len(d.Images) > MaxImages {
		return Errorf(EINVALID, "document has %d images, limit is %d", len(d.Images), MaxImages)
	}
	if len(d.Links) > MaxLinks {
		return Errorf(EINVALID, "document has %d links, limit is %d", len(d.Links), MaxLinks)
	}
	return nil
}

// WordCount returns the number of whitespace-delimited tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// DocumentService represents the durable store of extracted documents.
type DocumentService interface {
	// CreateDocument saves a new document.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocuments retrieves documents matching the filter,
	// most recent first.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// CountDocuments returns the number of documents held for a website.
	CountDocuments(ctx context.Context, websiteID string) (int, error)

	// DeleteDocumentsByWebsite removes all documents for a website.
	DeleteDocumentsByWebsite(ctx context.Context, websiteID string) error

	// ReplaceDocuments atomically swaps a website's document set for docs.
	// Either the whole new set becomes visible or the old set is kept.
	ReplaceDocuments(ctx context.Context, websiteID string, docs []*Document) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID        *string `json:"id"`
	WebsiteID *string `json:"websiteId"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

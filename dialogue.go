package sitechat

import (
	"context"
	"time"
)

// Pagination defaults for dialogue history.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DialogueRecord is one question and answer exchange.
// Records are append-only.
type DialogueRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	WebsiteID      string    `json:"websiteId"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	ResponseTimeMs int64     `json:"responseTimeMs"`
	RelevanceScore float64   `json:"relevanceScore"`
	ModelID        string    `json:"modelId"`
	Degraded       bool      `json:"degraded"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *DialogueRecord) Validate() error {
	if r.UserID == "" {
		return Errorf(EINVALID, "dialogue user ID required")
	}
	if r.WebsiteID == "" {
		return Errorf(EINVALID, "dialogue website ID required")
	}
	if r.Question == "" {
		return Errorf(EINVALID, "dialogue question required")
	}
	if r.ResponseTimeMs < 0 {
		return Errorf(EINVALID, "response time must not be negative")
	}
	if r.RelevanceScore < 0 || r.RelevanceScore > 1 {
		return Errorf(EINVALID, "relevance score must be within [0,1]")
	}
	return nil
}

// DialogueService represents the durable store of dialogue records.
type DialogueService interface {
	// CreateDialogue appends a record and assigns its ID and timestamp.
	CreateDialogue(ctx context.Context, record *DialogueRecord) error

	// FindDialogues retrieves records matching the filter, most recent first.
	FindDialogues(ctx context.Context, filter DialogueFilter) ([]*DialogueRecord, error)

	// CountDialogues returns the number of records matching the filter.
	// Offset and Limit are ignored.
	CountDialogues(ctx context.Context, filter DialogueFilter) (int, error)

	// DeleteDialogue removes a record owned by userID.
	// Returns ENOTFOUND if the record does not exist and EUNAUTHORIZED
	// if it belongs to another user.
	DeleteDialogue(ctx context.Context, id, userID string) error
}

// DialogueFilter represents a filter for FindDialogues.
type DialogueFilter struct {
	UserID    *string `json:"userId"`
	WebsiteID *string `json:"websiteId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DialoguePage is one page of a user's dialogue history.
type DialoguePage struct {
	Records  []*DialogueRecord `json:"records"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Total    int               `json:"total"`
	Pages    int               `json:"pages"`
	HasNext  bool              `json:"hasNext"`
	HasPrev  bool              `json:"hasPrev"`
}

// NewDialoguePage computes the pagination envelope for records.
func NewDialoguePage(records []*DialogueRecord, page, pageSize, total int) *DialoguePage {
	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	if records == nil {
		records = []*DialogueRecord{}
	}
	return &DialoguePage{
		Records:  records,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Pages:    pages,
		HasNext:  page < pages,
		HasPrev:  page > 1,
	}
}

// ChatService answers questions about websites and manages dialogue history.
type ChatService interface {
	// SendMessage answers question against the website's documents and
	// records the exchange for the user.
	SendMessage(ctx context.Context, userID, websiteID, question string) (*DialogueRecord, error)

	// ListDialogue returns one page of the user's history. An empty
	// websiteID lists every website.
	ListDialogue(ctx context.Context, userID, websiteID string, page, pageSize int) (*DialoguePage, error)

	// DeleteDialogue removes one of the user's records.
	DeleteDialogue(ctx context.Context, id, userID string) error
}

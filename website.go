package sitechat

import (
	"context"
	"net/url"
	"time"
)

// DefaultCrawlDepth fetches the seed page only.
const DefaultCrawlDepth = 1

// CrawlStatus is the state of a website's crawl lifecycle.
type CrawlStatus string

// CrawlStatus constants.
const (
	CrawlPending   CrawlStatus = "pending"
	CrawlCrawling  CrawlStatus = "crawling"
	CrawlCompleted CrawlStatus = "completed"
	CrawlFailed    CrawlStatus = "failed"
)

// transitions lists the states each state may move to.
// Terminal states re-enter the lifecycle only through pending.
var transitions = map[CrawlStatus][]CrawlStatus{
	CrawlPending:   {CrawlCrawling},
	CrawlCrawling:  {CrawlCompleted, CrawlFailed},
	CrawlCompleted: {CrawlPending},
	CrawlFailed:    {CrawlPending},
}

// Valid reports whether s is a known crawl status.
func (s CrawlStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s CrawlStatus) CanTransitionTo(next CrawlStatus) bool {
	for _, to := range transitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// Predecessors returns the states from which s may be entered.
func (s CrawlStatus) Predecessors() []CrawlStatus {
	var preds []CrawlStatus
	for _, from := range []CrawlStatus{CrawlPending, CrawlCrawling, CrawlCompleted, CrawlFailed} {
		if from.CanTransitionTo(s) {
			preds = append(preds, from)
		}
	}
	return preds
}

// Terminal reports whether s ends a crawl.
func (s CrawlStatus) Terminal() bool {
	return s == CrawlCompleted || s == CrawlFailed
}

// Website represents a site registered for crawling and chat.
type Website struct {
	ID            string      `json:"id"`
	URL           string      `json:"url"`
	Name          string      `json:"name"`
	IsActive      bool        `json:"isActive"`
	CrawlStatus   CrawlStatus `json:"crawlStatus"`
	FailureReason string      `json:"failureReason,omitempty"`
	LastCrawledAt *time.Time  `json:"lastCrawledAt"`
	CrawlDepth    int         `json:"crawlDepth"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// Validate returns an error if the website contains invalid fields.
func (w *Website) Validate() error {
	if w.Name == "" {
		return Errorf(EINVALID, "website name required")
	}
	if w.URL == "" {
		return Errorf(EINVALID, "website URL required")
	}
	u, err := url.Parse(w.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "website URL must be an absolute http(s) URL")
	}
	if w.CrawlDepth < 0 {
		return Errorf(EINVALID, "crawl depth must not be negative")
	}
	return nil
}

// WebsiteService represents a registry of websites.
type WebsiteService interface {
	// CreateWebsite registers a new website in the pending state.
	// Returns ECONFLICT if the URL is already registered.
	CreateWebsite(ctx context.Context, website *Website) error

	// FindWebsiteByID retrieves a website by ID.
	// Returns ENOTFOUND if website does not exist.
	FindWebsiteByID(ctx context.Context, id string) (*Website, error)

	// FindWebsites retrieves websites matching the filter.
	FindWebsites(ctx context.Context, filter WebsiteFilter) ([]*Website, error)

	// SetCrawlStatus moves a website to status, recording reason for
	// failures. The update only applies when the current status is one of
	// status.Predecessors(); otherwise ECONFLICT is returned.
	// Returns ENOTFOUND if website does not exist.
	SetCrawlStatus(ctx context.Context, id string, status CrawlStatus, reason string) error
}

// WebsiteFilter represents a filter for FindWebsites.
type WebsiteFilter struct {
	ID          *string      `json:"id"`
	URL         *string      `json:"url"`
	CrawlStatus *CrawlStatus `json:"crawlStatus"`
	IsActive    *bool        `json:"isActive"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// CrawlReport is the read-only view of a website's crawl state.
type CrawlReport struct {
	WebsiteID     string      `json:"websiteId"`
	Status        CrawlStatus `json:"status"`
	FailureReason string      `json:"failureReason,omitempty"`
	LastCrawledAt *time.Time  `json:"lastCrawledAt"`
	DocumentCount int         `json:"documentCount"`
}

// CrawlService controls crawls of registered websites.
type CrawlService interface {
	// Start moves a website into crawling and crawls it in the background.
	// Returns ECONFLICT if a crawl of the website is already running.
	Start(ctx context.Context, websiteID string) error

	// StartRecrawl is Start for a website whose documents are replaced
	// once the new crawl completes.
	StartRecrawl(ctx context.Context, websiteID string) error

	// Stop cancels a running crawl and waits for it to reach failed.
	Stop(ctx context.Context, websiteID string) error

	// Status reports the crawl state and document count of a website.
	Status(ctx context.Context, websiteID string) (*CrawlReport, error)
}

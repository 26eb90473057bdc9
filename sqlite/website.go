package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fwojciec/sitechat"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ sitechat.WebsiteService = (*WebsiteService)(nil)

// WebsiteService implements sitechat.WebsiteService using SQLite.
type WebsiteService struct {
	db *DB
}

// NewWebsiteService creates a new WebsiteService.
func NewWebsiteService(db *DB) *WebsiteService {
	return &WebsiteService{db: db}
}

const websiteColumns = "id, url, name, is_active, crawl_status, failure_reason, last_crawled_at, crawl_depth, created_at, updated_at"

// CreateWebsite registers a new website in the pending state.
func (s *WebsiteService) CreateWebsite(ctx context.Context, website *sitechat.Website) error {
	if website.CrawlDepth == 0 {
		website.CrawlDepth = sitechat.DefaultCrawlDepth
	}
	if err := website.Validate(); err != nil {
		return err
	}

	website.ID = uuid.New().String()
	website.CrawlStatus = sitechat.CrawlPending
	website.FailureReason = ""
	website.LastCrawledAt = nil
	now := s.db.Now()
	website.CreatedAt = now
	website.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO websites (`+websiteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, NULL, ?, ?, ?)
	`, website.ID, website.URL, website.Name, website.IsActive, website.CrawlStatus, website.FailureReason,
		website.CrawlDepth, formatTime(website.CreatedAt), formatTime(website.UpdatedAt))
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return sitechat.Errorf(sitechat.ECONFLICT, "website %q already registered", website.URL)
	}
	return err
}

// FindWebsiteByID retrieves a website by ID.
func (s *WebsiteService) FindWebsiteByID(ctx context.Context, id string) (*sitechat.Website, error) {
	websites, err := s.FindWebsites(ctx, sitechat.WebsiteFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(websites) == 0 {
		return nil, sitechat.Errorf(sitechat.ENOTFOUND, "website not found")
	}
	return websites[0], nil
}

// FindWebsites retrieves websites matching the filter.
func (s *WebsiteService) FindWebsites(ctx context.Context, filter sitechat.WebsiteFilter) ([]*sitechat.Website, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + websiteColumns + " FROM websites WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.CrawlStatus != nil {
		query.WriteString(" AND crawl_status = ?")
		args = append(args, *filter.CrawlStatus)
	}
	if filter.IsActive != nil {
		query.WriteString(" AND is_active = ?")
		args = append(args, *filter.IsActive)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var websites []*sitechat.Website
	for rows.Next() {
		website, err := scanWebsite(rows)
		if err != nil {
			return nil, err
		}
		websites = append(websites, website)
	}

	return websites, rows.Err()
}

// SetCrawlStatus moves a website to status if its current status allows it.
// Entering completed stamps last_crawled_at.
func (s *WebsiteService) SetCrawlStatus(ctx context.Context, id string, status sitechat.CrawlStatus, reason string) error {
	if !status.Valid() {
		return sitechat.Errorf(sitechat.EINVALID, "invalid crawl status %q", status)
	}

	preds := status.Predecessors()
	now := formatTime(s.db.Now())

	args := []any{status, reason, now, status, now, id}
	for _, p := range preds {
		args = append(args, p)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE websites
		SET crawl_status = ?,
			failure_reason = ?,
			updated_at = ?,
			last_crawled_at = CASE WHEN ? = 'completed' THEN ? ELSE last_crawled_at END
		WHERE id = ? AND crawl_status IN (`+placeholders(len(preds))+`)
	`, args...)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	website, err := s.FindWebsiteByID(ctx, id)
	if err != nil {
		return err
	}
	return sitechat.Errorf(sitechat.ECONFLICT, "cannot move website from %s to %s", website.CrawlStatus, status)
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanWebsite(row scanner) (*sitechat.Website, error) {
	var website sitechat.Website
	var lastCrawledAt sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&website.ID, &website.URL, &website.Name, &website.IsActive, &website.CrawlStatus,
		&website.FailureReason, &lastCrawledAt, &website.CrawlDepth, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if website.LastCrawledAt, err = parseNullTime(lastCrawledAt, "last_crawled_at"); err != nil {
		return nil, err
	}
	if website.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if website.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &website, nil
}

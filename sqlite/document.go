package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitechat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitechat.DocumentService = (*DocumentService)(nil)

// DocumentService implements sitechat.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

const documentColumns = "id, website_id, source_url, title, text, images, links, description, keywords, author, word_count, content_hash, position, created_at"

// execer is implemented by *DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateDocument saves a new document.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *sitechat.Document) error {
	return s.insertDocument(ctx, s.db, doc, s.db.Now())
}

// ReplaceDocuments deletes the website's documents and inserts docs in one
// transaction.
func (s *DocumentService) ReplaceDocuments(ctx context.Context, websiteID string, docs []*sitechat.Document) error {
	for _, doc := range docs {
		if doc.WebsiteID != websiteID {
			return sitechat.Errorf(sitechat.EINVALID, "document %q belongs to website %q, not %q", doc.SourceURL, doc.WebsiteID, websiteID)
		}
		if err := doc.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE website_id = ?", websiteID); err != nil {
		return err
	}
	// One timestamp for the whole set keeps it ordered by position.
	now := s.db.Now()
	for _, doc := range docs {
		if err := s.insertDocument(ctx, tx, doc, now); err != nil {
			return fmt.Errorf("inserting %s: %w", doc.SourceURL, err)
		}
	}

	return tx.Commit()
}

func (s *DocumentService) insertDocument(ctx context.Context, db execer, doc *sitechat.Document, now time.Time) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.CreatedAt = now
	doc.WordCount = sitechat.WordCount(doc.Text)
	if doc.ContentHash == "" {
		doc.ContentHash = fmt.Sprintf("%016x", xxhash.Sum64String(doc.Text))
	}

	images, err := encodeStrings(doc.Images)
	if err != nil {
		return err
	}
	links, err := encodeStrings(doc.Links)
	if err != nil {
		return err
	}
	keywords, err := encodeStrings(doc.Metadata.Keywords)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.WebsiteID, doc.SourceURL, doc.Title, doc.Text, images, links,
		doc.Metadata.Description, keywords, doc.Metadata.Author, doc.WordCount, doc.ContentHash,
		doc.Position, formatTime(doc.CreatedAt))

	return err
}

// FindDocuments retrieves documents matching the filter, most recent first.
// Documents committed together keep their crawl order.
func (s *DocumentService) FindDocuments(ctx context.Context, filter sitechat.DocumentFilter) ([]*sitechat.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.WebsiteID != nil {
		query.WriteString(" AND website_id = ?")
		args = append(args, *filter.WebsiteID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY created_at DESC, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*sitechat.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// CountDocuments returns the number of documents held for a website.
func (s *DocumentService) CountDocuments(ctx context.Context, websiteID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents WHERE website_id = ?", websiteID).Scan(&n)
	return n, err
}

// DeleteDocumentsByWebsite removes all documents for a website.
func (s *DocumentService) DeleteDocumentsByWebsite(ctx context.Context, websiteID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE website_id = ?", websiteID)
	return err
}

func scanDocument(row scanner) (*sitechat.Document, error) {
	var doc sitechat.Document
	var images, links, keywords, createdAt string

	if err := row.Scan(&doc.ID, &doc.WebsiteID, &doc.SourceURL, &doc.Title, &doc.Text, &images, &links,
		&doc.Metadata.Description, &keywords, &doc.Metadata.Author, &doc.WordCount, &doc.ContentHash,
		&doc.Position, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if doc.Images, err = decodeStrings(images, "images"); err != nil {
		return nil, err
	}
	if doc.Links, err = decodeStrings(links, "links"); err != nil {
		return nil, err
	}
	if doc.Metadata.Keywords, err = decodeStrings(keywords, "keywords"); err != nil {
		return nil, err
	}
	if doc.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &doc, nil
}

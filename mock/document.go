package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of sitechat.DocumentService.
type DocumentService struct {
	CreateDocumentFn           func(ctx context.Context, doc *sitechat.Document) error
	FindDocumentsFn            func(ctx context.Context, filter sitechat.DocumentFilter) ([]*sitechat.Document, error)
	CountDocumentsFn           func(ctx context.Context, websiteID string) (int, error)
	DeleteDocumentsByWebsiteFn func(ctx context.Context, websiteID string) error
	ReplaceDocumentsFn         func(ctx context.Context, websiteID string, docs []*sitechat.Document) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *sitechat.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter sitechat.DocumentFilter) ([]*sitechat.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) CountDocuments(ctx context.Context, websiteID string) (int, error) {
	return s.CountDocumentsFn(ctx, websiteID)
}

func (s *DocumentService) DeleteDocumentsByWebsite(ctx context.Context, websiteID string) error {
	return s.DeleteDocumentsByWebsiteFn(ctx, websiteID)
}

func (s *DocumentService) ReplaceDocuments(ctx context.Context, websiteID string, docs []*sitechat.Document) error {
	return s.ReplaceDocumentsFn(ctx, websiteID, docs)
}

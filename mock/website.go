package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.WebsiteService = (*WebsiteService)(nil)

// WebsiteService is a mock implementation of sitechat.WebsiteService.
type WebsiteService struct {
	CreateWebsiteFn   func(ctx context.Context, website *sitechat.Website) error
	FindWebsiteByIDFn func(ctx context.Context, id string) (*sitechat.Website, error)
	FindWebsitesFn    func(ctx context.Context, filter sitechat.WebsiteFilter) ([]*sitechat.Website, error)
	SetCrawlStatusFn  func(ctx context.Context, id string, status sitechat.CrawlStatus, reason string) error
}

func (s *WebsiteService) CreateWebsite(ctx context.Context, website *sitechat.Website) error {
	return s.CreateWebsiteFn(ctx, website)
}

func (s *WebsiteService) FindWebsiteByID(ctx context.Context, id string) (*sitechat.Website, error) {
	return s.FindWebsiteByIDFn(ctx, id)
}

func (s *WebsiteService) FindWebsites(ctx context.Context, filter sitechat.WebsiteFilter) ([]*sitechat.Website, error) {
	return s.FindWebsitesFn(ctx, filter)
}

func (s *WebsiteService) SetCrawlStatus(ctx context.Context, id string, status sitechat.CrawlStatus, reason string) error {
	return s.SetCrawlStatusFn(ctx, id, status, reason)
}

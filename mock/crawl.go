package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.CrawlService = (*CrawlService)(nil)

// CrawlService is a mock implementation of sitechat.CrawlService.
type CrawlService struct {
	StartFn        func(ctx context.Context, websiteID string) error
	StartRecrawlFn func(ctx context.Context, websiteID string) error
	StopFn         func(ctx context.Context, websiteID string) error
	StatusFn       func(ctx context.Context, websiteID string) (*sitechat.CrawlReport, error)
}

func (s *CrawlService) Start(ctx context.Context, websiteID string) error {
	return s.StartFn(ctx, websiteID)
}

func (s *CrawlService) StartRecrawl(ctx context.Context, websiteID string) error {
	return s.StartRecrawlFn(ctx, websiteID)
}

func (s *CrawlService) Stop(ctx context.Context, websiteID string) error {
	return s.StopFn(ctx, websiteID)
}

func (s *CrawlService) Status(ctx context.Context, websiteID string) (*sitechat.CrawlReport, error) {
	return s.StatusFn(ctx, websiteID)
}

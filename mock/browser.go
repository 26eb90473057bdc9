package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var (
	_ sitechat.BrowserLauncher = (*BrowserLauncher)(nil)
	_ sitechat.BrowserSession  = (*BrowserSession)(nil)
	_ sitechat.DomainLimiter   = (*DomainLimiter)(nil)
)

// BrowserLauncher is a mock implementation of sitechat.BrowserLauncher.
type BrowserLauncher struct {
	OpenFn func(ctx context.Context) (sitechat.BrowserSession, error)
}

func (l *BrowserLauncher) Open(ctx context.Context) (sitechat.BrowserSession, error) {
	return l.OpenFn(ctx)
}

// BrowserSession is a mock implementation of sitechat.BrowserSession.
type BrowserSession struct {
	RenderFn func(ctx context.Context, url string) (*sitechat.Rendering, error)
	CloseFn  func() error
}

func (s *BrowserSession) Render(ctx context.Context, url string) (*sitechat.Rendering, error) {
	return s.RenderFn(ctx, url)
}

func (s *BrowserSession) Close() error {
	return s.CloseFn()
}

// DomainLimiter is a mock implementation of sitechat.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

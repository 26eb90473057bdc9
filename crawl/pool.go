package crawl

import (
	"context"
	"log/slog"

	"github.com/fwojciec/sitechat"
	"golang.org/x/sync/semaphore"
)

// DefaultPoolSize is the number of browser processes that may run at once.
const DefaultPoolSize = 1

// Pool bounds the number of live browser sessions. A session is opened
// on Acquire and closed on Release, so each crawl owns its process
// exclusively for its whole lifetime.
type Pool struct {
	launcher sitechat.BrowserLauncher
	sem      *semaphore.Weighted
	logger   *slog.Logger
}

// NewPool creates a Pool admitting at most size concurrent sessions.
// A size below 1 is treated as 1.
func NewPool(launcher sitechat.BrowserLauncher, size int, logger *slog.Logger) *Pool {
	if size < 1 {
		size = DefaultPoolSize
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pool{
		launcher: launcher,
		sem:      semaphore.NewWeighted(int64(size)),
		logger:   logger,
	}
}

// Acquire waits for a free slot and opens a session in it.
func (p *Pool) Acquire(ctx context.Context) (sitechat.BrowserSession, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	session, err := p.launcher.Open(ctx)
	if err != nil {
		p.sem.Release(1)
		return nil, err
	}
	return session, nil
}

// Release closes the session and frees its slot. Close failures are
// logged, never returned.
func (p *Pool) Release(session sitechat.BrowserSession) {
	defer p.sem.Release(1)

	if err := session.Close(); err != nil {
		p.logger.Warn("releasing browser session", "err", err)
	}
}

// Package crawl drives website crawls: it owns the crawl state machine,
// serializes access to browser sessions, walks a site breadth-first and
// commits the extracted documents.
package crawl

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/fwojciec/sitechat"
)

// DefaultMaxPages bounds the number of pages one crawl may render.
const DefaultMaxPages = 25

// Failure reasons recorded when a crawl is interrupted rather than failing
// on its own.
const (
	ReasonStopped     = "stopped"
	ReasonInterrupted = "interrupted"
)

var _ sitechat.CrawlService = (*Orchestrator)(nil)

var (
	errStopped  = errors.New(ReasonStopped)
	errShutdown = errors.New(ReasonInterrupted)
)

// Orchestrator runs crawls and tracks the ones in flight.
// Orchestrator is safe for concurrent use.
type Orchestrator struct {
	Websites  sitechat.WebsiteService
	Documents sitechat.DocumentService
	Extractor sitechat.Extractor
	Pool      *Pool

	// Limiter spaces renders within one site. Optional.
	Limiter sitechat.DomainLimiter

	// MaxPages bounds pages per crawl; DefaultMaxPages when zero.
	MaxPages int

	// Logger defaults to discarding output.
	Logger *slog.Logger

	mu      sync.Mutex
	running map[string]*job
	closed  bool
	wg      sync.WaitGroup
}

// job is one in-flight crawl.
type job struct {
	cancel context.CancelCauseFunc
	done   chan struct{}
}

// Start begins crawling a website in the background and returns once the
// website has entered the crawling state.
// Returns ENOTFOUND for unknown websites and ECONFLICT if a crawl is
// already running.
func (o *Orchestrator) Start(ctx context.Context, websiteID string) error {
	return o.start(ctx, websiteID, false)
}

// StartRecrawl is Start for a website whose documents should be replaced.
// The previous documents stay in place until the new crawl completes.
func (o *Orchestrator) StartRecrawl(ctx context.Context, websiteID string) error {
	return o.start(ctx, websiteID, true)
}

func (o *Orchestrator) start(ctx context.Context, websiteID string, recrawl bool) error {
	// The crawl outlives the caller's request.
	jobCtx, website, j, err := o.begin(ctx, context.WithoutCancel(ctx), websiteID, recrawl)
	if err != nil {
		return err
	}

	go func() {
		defer j.cancel(nil)
		_, _ = o.run(jobCtx, website, j)
	}()
	return nil
}

// Crawl crawls a website and waits for the outcome. A failed crawl is
// reported through the returned report, not as an error.
func (o *Orchestrator) Crawl(ctx context.Context, websiteID string) (*sitechat.CrawlReport, error) {
	return o.crawlSync(ctx, websiteID, false)
}

// Recrawl is Crawl for a website whose documents should be replaced.
func (o *Orchestrator) Recrawl(ctx context.Context, websiteID string) (*sitechat.CrawlReport, error) {
	return o.crawlSync(ctx, websiteID, true)
}

func (o *Orchestrator) crawlSync(ctx context.Context, websiteID string, recrawl bool) (*sitechat.CrawlReport, error) {
	jobCtx, website, j, err := o.begin(ctx, ctx, websiteID, recrawl)
	if err != nil {
		return nil, err
	}
	defer j.cancel(nil)

	return o.run(jobCtx, website, j)
}

// begin reserves the website in the running set and moves it to crawling.
// The returned context derives from parent and is canceled by Stop and
// Close. The reservation is undone if the transition fails.
func (o *Orchestrator) begin(ctx, parent context.Context, websiteID string, recrawl bool) (context.Context, *sitechat.Website, *job, error) {
	website, err := o.Websites.FindWebsiteByID(ctx, websiteID)
	if err != nil {
		return nil, nil, nil, err
	}

	jobCtx, cancel := context.WithCancelCause(parent)
	j := &job{cancel: cancel, done: make(chan struct{})}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		cancel(nil)
		return nil, nil, nil, sitechat.Errorf(sitechat.EINVALID, "crawler is shut down")
	}
	if o.running == nil {
		o.running = make(map[string]*job)
	}
	if _, ok := o.running[websiteID]; ok {
		o.mu.Unlock()
		cancel(nil)
		return nil, nil, nil, sitechat.Errorf(sitechat.ECONFLICT, "crawl already in progress")
	}
	o.running[websiteID] = j
	o.wg.Add(1)
	o.mu.Unlock()

	undo := func() {
		o.mu.Lock()
		delete(o.running, websiteID)
		o.mu.Unlock()
		cancel(nil)
		close(j.done)
		o.wg.Done()
	}

	if website.CrawlStatus.Terminal() {
		if err := o.Websites.SetCrawlStatus(ctx, websiteID, sitechat.CrawlPending, ""); err != nil {
			undo()
			return nil, nil, nil, err
		}
	}
	if err := o.Websites.SetCrawlStatus(ctx, websiteID, sitechat.CrawlCrawling, ""); err != nil {
		undo()
		if sitechat.ErrorCode(err) == sitechat.ECONFLICT {
			return nil, nil, nil, sitechat.Errorf(sitechat.ECONFLICT, "crawl already in progress")
		}
		return nil, nil, nil, err
	}

	o.logger().Info("crawl started", "website", websiteID, "url", website.URL, "recrawl", recrawl)
	return jobCtx, website, j, nil
}

// run walks the site, commits the result and records the final state.
func (o *Orchestrator) run(ctx context.Context, website *sitechat.Website, j *job) (*sitechat.CrawlReport, error) {
	defer func() {
		o.mu.Lock()
		delete(o.running, website.ID)
		o.mu.Unlock()
		close(j.done)
		o.wg.Done()
	}()

	docs, err := o.walk(ctx, website)
	if err == nil {
		err = o.Documents.ReplaceDocuments(ctx, website.ID, docs)
	}

	// The final state is written even when the crawl was canceled.
	final := context.WithoutCancel(ctx)
	if err != nil {
		reason := failureReason(ctx, err)
		o.logger().Warn("crawl failed", "website", website.ID, "reason", reason)
		if serr := o.Websites.SetCrawlStatus(final, website.ID, sitechat.CrawlFailed, reason); serr != nil {
			o.logger().Error("recording crawl failure", "website", website.ID, "err", serr)
			return nil, serr
		}
	} else {
		o.logger().Info("crawl completed", "website", website.ID, "documents", len(docs))
		if serr := o.Websites.SetCrawlStatus(final, website.ID, sitechat.CrawlCompleted, ""); serr != nil {
			o.logger().Error("recording crawl completion", "website", website.ID, "err", serr)
			return nil, serr
		}
	}

	return o.Status(final, website.ID)
}

func failureReason(ctx context.Context, err error) string {
	switch cause := context.Cause(ctx); {
	case errors.Is(cause, errStopped):
		return ReasonStopped
	case errors.Is(cause, errShutdown):
		return ReasonInterrupted
	}
	var e *sitechat.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Status reports a website's crawl state and committed document count.
// Returns ENOTFOUND if the website does not exist.
func (o *Orchestrator) Status(ctx context.Context, websiteID string) (*sitechat.CrawlReport, error) {
	website, err := o.Websites.FindWebsiteByID(ctx, websiteID)
	if err != nil {
		return nil, err
	}
	n, err := o.Documents.CountDocuments(ctx, websiteID)
	if err != nil {
		return nil, err
	}
	return &sitechat.CrawlReport{
		WebsiteID:     website.ID,
		Status:        website.CrawlStatus,
		FailureReason: website.FailureReason,
		LastCrawledAt: website.LastCrawledAt,
		DocumentCount: n,
	}, nil
}

// Stop cancels a running crawl and waits for it to record its failure.
// A website left crawling without a running task is marked failed
// directly. Returns ECONFLICT if the website is not being crawled.
func (o *Orchestrator) Stop(ctx context.Context, websiteID string) error {
	o.mu.Lock()
	j, ok := o.running[websiteID]
	if ok {
		o.mu.Unlock()
		j.cancel(errStopped)
		select {
		case <-j.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	// Holding the lock keeps a concurrent Start from registering a crawl
	// between the check above and the status update below.
	defer o.mu.Unlock()

	website, err := o.Websites.FindWebsiteByID(ctx, websiteID)
	if err != nil {
		return err
	}
	if website.CrawlStatus != sitechat.CrawlCrawling {
		return sitechat.Errorf(sitechat.ECONFLICT, "website is not being crawled")
	}
	return o.Websites.SetCrawlStatus(ctx, websiteID, sitechat.CrawlFailed, ReasonStopped)
}

// Recover marks websites left crawling by a previous process as failed.
// It returns the number of websites recovered.
func (o *Orchestrator) Recover(ctx context.Context) (int, error) {
	status := sitechat.CrawlCrawling
	websites, err := o.Websites.FindWebsites(ctx, sitechat.WebsiteFilter{CrawlStatus: &status})
	if err != nil {
		return 0, err
	}

	var n int
	for _, website := range websites {
		o.mu.Lock()
		_, running := o.running[website.ID]
		o.mu.Unlock()
		if running {
			continue
		}
		err := o.Websites.SetCrawlStatus(ctx, website.ID, sitechat.CrawlFailed, ReasonInterrupted)
		if sitechat.ErrorCode(err) == sitechat.ECONFLICT {
			continue
		} else if err != nil {
			return n, err
		}
		o.logger().Warn("recovered interrupted crawl", "website", website.ID)
		n++
	}
	return n, nil
}

// Close cancels every running crawl and waits for them to finish.
// Crawls canceled this way are recorded as interrupted.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	o.closed = true
	for _, j := range o.running {
		j.cancel(errShutdown)
	}
	o.mu.Unlock()

	o.wg.Wait()
	return nil
}

// Running reports whether a crawl of the website is in flight.
func (o *Orchestrator) Running(websiteID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.running[websiteID]
	return ok
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

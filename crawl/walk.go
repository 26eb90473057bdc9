package crawl

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitechat"
)

// walk renders the website breadth-first, up to its crawl depth and
// MaxPages, and returns the staged documents in crawl order.
// A failure on the seed page fails the walk; failures on other pages
// are logged and skipped.
func (o *Orchestrator) walk(ctx context.Context, website *sitechat.Website) ([]*sitechat.Document, error) {
	maxPages := o.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	maxDepth := max(website.CrawlDepth, 1)

	seed, err := url.Parse(website.URL)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "invalid website URL %q", website.URL)
	}
	frontier, err := NewFrontier(website.URL, uint(maxPages*10))
	if err != nil {
		return nil, err
	}
	frontier.Push(website.URL, 0)

	session, err := o.Pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring browser: %w", err)
	}
	defer o.Pool.Release(session)

	logger := o.logger().With("website", website.ID)
	hashes := make(map[uint64]struct{})
	var docs []*sitechat.Document

	for len(docs) < maxPages {
		target, ok := frontier.Pop()
		if !ok {
			break
		}

		if o.Limiter != nil && target.Depth > 0 {
			if err := o.Limiter.Wait(ctx, seed.Hostname()); err != nil {
				return nil, err
			}
		}

		rendering, err := session.Render(ctx, target.URL)
		if err != nil {
			if target.Depth == 0 || ctx.Err() != nil {
				return nil, err
			}
			logger.Warn("skipping page", "url", target.URL, "err", err)
			continue
		}
		for _, w := range rendering.Warnings {
			logger.Warn("render warning", "url", target.URL, "kind", w.Kind, "message", w.Message)
		}

		ext, err := o.Extractor.Extract(rendering.HTML, target.URL)
		if err != nil {
			if target.Depth == 0 {
				return nil, fmt.Errorf("extracting %s: %w", target.URL, err)
			}
			logger.Warn("skipping page", "url", target.URL, "err", err)
			continue
		}

		sum := xxhash.Sum64String(ext.Text)
		if _, dup := hashes[sum]; dup {
			logger.Debug("skipping duplicate page", "url", target.URL)
			continue
		}
		hashes[sum] = struct{}{}

		docs = append(docs, &sitechat.Document{
			WebsiteID:   website.ID,
			SourceURL:   target.URL,
			Title:       ext.Title,
			Text:        ext.Text,
			Images:      ext.Images,
			Links:       ext.Links,
			Metadata:    ext.Metadata,
			WordCount:   ext.WordCount,
			ContentHash: fmt.Sprintf("%016x", sum),
			Position:    len(docs),
		})
		logger.Debug("page extracted", "url", target.URL, "words", ext.WordCount, "depth", target.Depth)

		if target.Depth+1 < maxDepth {
			for _, link := range ext.Links {
				frontier.Push(link, target.Depth+1)
			}
		}
	}

	return docs, nil
}

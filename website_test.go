package sitechat_test

import (
	"testing"

	"github.com/fwojciec/sitechat"
	"github.com/stretchr/testify/assert"
)

func TestCrawlStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	allowed := map[[2]sitechat.CrawlStatus]bool{
		{sitechat.CrawlPending, sitechat.CrawlCrawling}:   true,
		{sitechat.CrawlCrawling, sitechat.CrawlCompleted}: true,
		{sitechat.CrawlCrawling, sitechat.CrawlFailed}:    true,
		{sitechat.CrawlCompleted, sitechat.CrawlPending}:  true,
		{sitechat.CrawlFailed, sitechat.CrawlPending}:     true,
	}
	all := []sitechat.CrawlStatus{
		sitechat.CrawlPending, sitechat.CrawlCrawling, sitechat.CrawlCompleted, sitechat.CrawlFailed,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]sitechat.CrawlStatus{from, to}], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestCrawlStatus_Predecessors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []sitechat.CrawlStatus{sitechat.CrawlPending}, sitechat.CrawlCrawling.Predecessors())
	assert.Equal(t, []sitechat.CrawlStatus{sitechat.CrawlCompleted, sitechat.CrawlFailed}, sitechat.CrawlPending.Predecessors())
	assert.Equal(t, []sitechat.CrawlStatus{sitechat.CrawlCrawling}, sitechat.CrawlFailed.Predecessors())
}

func TestCrawlStatus_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, sitechat.CrawlCompleted.Valid())
	assert.False(t, sitechat.CrawlStatus("stopped").Valid())
}

func TestWebsite_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts absolute URL", func(t *testing.T) {
		t.Parallel()

		w := &sitechat.Website{Name: "Example", URL: "https://example.com"}
		assert.NoError(t, w.Validate())
	})

	t.Run("requires name", func(t *testing.T) {
		t.Parallel()

		w := &sitechat.Website{URL: "https://example.com"}
		err := w.Validate()
		assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
	})

	t.Run("rejects relative URL", func(t *testing.T) {
		t.Parallel()

		w := &sitechat.Website{Name: "Example", URL: "/docs"}
		err := w.Validate()
		assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
	})

	t.Run("rejects negative depth", func(t *testing.T) {
		t.Parallel()

		w := &sitechat.Website{Name: "Example", URL: "https://example.com", CrawlDepth: -1}
		err := w.Validate()
		assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
	})
}

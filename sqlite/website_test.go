package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsiteService_CreateWebsite(t *testing.T) {
	t.Parallel()

	t.Run("creates pending website with defaults", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewWebsiteService(db)
		ctx := context.Background()

		website := &sitechat.Website{Name: "Example", URL: "https://example.com", IsActive: true}
		require.NoError(t, svc.CreateWebsite(ctx, website))

		assert.NotEmpty(t, website.ID)
		assert.Equal(t, sitechat.CrawlPending, website.CrawlStatus)
		assert.Equal(t, sitechat.DefaultCrawlDepth, website.CrawlDepth)
		assert.Nil(t, website.LastCrawledAt)

		found, err := svc.FindWebsiteByID(ctx, website.ID)
		require.NoError(t, err)
		assert.Equal(t, website.Name, found.Name)
		assert.True(t, found.IsActive)
		assert.Equal(t, sitechat.CrawlPending, found.CrawlStatus)
		assert.Nil(t, found.LastCrawledAt)
	})

	t.Run("returns ECONFLICT for duplicate URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewWebsiteService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateWebsite(ctx, &sitechat.Website{Name: "A", URL: "https://example.com"}))
		err := svc.CreateWebsite(ctx, &sitechat.Website{Name: "B", URL: "https://example.com"})

		require.Error(t, err)
		assert.Equal(t, sitechat.ECONFLICT, sitechat.ErrorCode(err))
	})

	t.Run("returns EINVALID for invalid website", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		err := sqlite.NewWebsiteService(db).CreateWebsite(context.Background(), &sitechat.Website{})

		require.Error(t, err)
		assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
	})
}

func TestWebsiteService_FindWebsites(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		_, err := sqlite.NewWebsiteService(db).FindWebsiteByID(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, sitechat.ENOTFOUND, sitechat.ErrorCode(err))
	})

	t.Run("filters by crawl status", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewWebsiteService(db)
		ctx := context.Background()

		a := createTestWebsite(t, db, "https://a.example.com")
		createTestWebsite(t, db, "https://b.example.com")
		require.NoError(t, svc.SetCrawlStatus(ctx, a.ID, sitechat.CrawlCrawling, ""))

		status := sitechat.CrawlCrawling
		websites, err := svc.FindWebsites(ctx, sitechat.WebsiteFilter{CrawlStatus: &status})

		require.NoError(t, err)
		require.Len(t, websites, 1)
		assert.Equal(t, a.ID, websites[0].ID)
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		useSteppingClock(db)
		createTestWebsite(t, db, "https://a.example.com")
		createTestWebsite(t, db, "https://b.example.com")

		websites, err := sqlite.NewWebsiteService(db).FindWebsites(context.Background(), sitechat.WebsiteFilter{Offset: 1})

		require.NoError(t, err)
		require.Len(t, websites, 1)
		assert.Equal(t, "https://a.example.com", websites[0].URL)
	})
}

func TestWebsiteService_SetCrawlStatus(t *testing.T) {
	t.Parallel()

	t.Run("follows the crawl lifecycle", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewWebsiteService(db)
		ctx := context.Background()
		website := createTestWebsite(t, db, "https://example.com")

		require.NoError(t, svc.SetCrawlStatus(ctx, website.ID, sitechat.CrawlCrawling, ""))
		require.NoError(t, svc.SetCrawlStatus(ctx, website.ID, sitechat.CrawlCompleted, ""))

		found, err := svc.FindWebsiteByID(ctx, website.ID)
		require.NoError(t, err)
		assert.Equal(t, sitechat.CrawlCompleted, found.CrawlStatus)
		require.NotNil(t, found.LastCrawledAt)

		require.NoError(t, svc.SetCrawlStatus(ctx, website.ID, sitechat.CrawlPending, ""))
		found, err = svc.FindWebsiteByID(ctx, website.ID)
		require.NoError(t, err)
		assert.Equal(t, sitechat.CrawlPending, found.CrawlStatus)
		assert.NotNil(t, found.LastCrawledAt, "reset keeps the last completed crawl time")
	})

	t.Run("records failure reason", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewWebsiteService(db)
		ctx := context.Background()
		website := createTestWebsite(t, db, "https://example.com")

		require.NoError(t, svc.SetCrawlStatus(ctx, website.ID, sitechat.CrawlCrawling, ""))
		require.NoError(t, svc.SetCrawlStatus(ctx, website.ID, sitechat.CrawlFailed, "navigation timeout"))

		found, err := svc.FindWebsiteByID(ctx, website.ID)
		require.NoError(t, err)
		assert.Equal(t, sitechat.CrawlFailed, found.CrawlStatus)
		assert.Equal(t, "navigation timeout", found.FailureReason)
		assert.Nil(t, found.LastCrawledAt)
	})

	t.Run("rejects crawling twice with ECONFLICT", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewWebsiteService(db)
		ctx := context.Background()
		website := createTestWebsite(t, db, "https://example.com")

		require.NoError(t, svc.SetCrawlStatus(ctx, website.ID, sitechat.CrawlCrawling, ""))
		err := svc.SetCrawlStatus(ctx, website.ID, sitechat.CrawlCrawling, "")

		require.Error(t, err)
		assert.Equal(t, sitechat.ECONFLICT, sitechat.ErrorCode(err))
	})

	t.Run("rejects skipping crawling", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewWebsiteService(db)
		website := createTestWebsite(t, db, "https://example.com")

		err := svc.SetCrawlStatus(context.Background(), website.ID, sitechat.CrawlCompleted, "")

		require.Error(t, err)
		assert.Equal(t, sitechat.ECONFLICT, sitechat.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for unknown website", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		err := sqlite.NewWebsiteService(db).SetCrawlStatus(context.Background(), "missing", sitechat.CrawlCrawling, "")

		require.Error(t, err)
		assert.Equal(t, sitechat.ENOTFOUND, sitechat.ErrorCode(err))
	})

	t.Run("returns EINVALID for unknown status", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		website := createTestWebsite(t, db, "https://example.com")
		err := sqlite.NewWebsiteService(db).SetCrawlStatus(context.Background(), website.ID, "stopped", "")

		require.Error(t, err)
		assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
	})
}

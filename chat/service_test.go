package chat_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/chat"
	"github.com/fwojciec/sitechat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serviceFixture wires a Service over mocks that record writes.
type serviceFixture struct {
	website    *sitechat.Website
	docs       []*sitechat.Document
	generateFn func(ctx context.Context, prompt string) (string, error)
	countErr   error

	generated  int
	saved      []*sitechat.DialogueRecord
	increments int
	decrements int
}

func newServiceFixture() *serviceFixture {
	return &serviceFixture{
		website: &sitechat.Website{ID: "w1", Name: "Example", URL: "https://example.com", IsActive: true, CrawlStatus: sitechat.CrawlCompleted},
		generateFn: func(ctx context.Context, prompt string) (string, error) {
			return "an answer", nil
		},
	}
}

func (f *serviceFixture) service() *chat.Service {
	users := &mock.UserService{
		FindUserByIDFn: func(ctx context.Context, id string) (*sitechat.User, error) {
			if id != "u1" {
				return nil, sitechat.Errorf(sitechat.ENOTFOUND, "user not found")
			}
			return &sitechat.User{ID: id, Name: "alice"}, nil
		},
		IncrementQueryCountFn: func(ctx context.Context, id string) error {
			f.increments++
			return f.countErr
		},
		DecrementQueryCountFn: func(ctx context.Context, id string) error {
			f.decrements++
			return nil
		},
	}
	websites := &mock.WebsiteService{
		FindWebsiteByIDFn: func(ctx context.Context, id string) (*sitechat.Website, error) {
			if id != f.website.ID {
				return nil, sitechat.Errorf(sitechat.ENOTFOUND, "website not found")
			}
			return f.website, nil
		},
	}
	dialogues := &mock.DialogueService{
		CreateDialogueFn: func(ctx context.Context, record *sitechat.DialogueRecord) error {
			record.ID = "d1"
			record.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			f.saved = append(f.saved, record)
			return nil
		},
	}
	gen := &mock.Generator{
		GenerateFn: func(ctx context.Context, prompt string) (string, error) {
			f.generated++
			return f.generateFn(ctx, prompt)
		},
		ModelFn: func() string { return "test-model" },
	}

	return &chat.Service{
		Users:     users,
		Websites:  websites,
		Dialogues: dialogues,
		Answerer: &chat.Answerer{
			Assembler: &chat.Assembler{Websites: websites, Documents: documentsReturning(f.docs...)},
			Generator: gen,
		},
	}
}

func TestService_SendMessage(t *testing.T) {
	t.Parallel()

	t.Run("website without documents gets the no-content reply", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture()

		record, err := f.service().SendMessage(context.Background(), "u1", "w1", "anything")

		require.NoError(t, err)
		assert.Equal(t, chat.NoContentMessage, record.Answer)
		assert.Zero(t, record.RelevanceScore)
		assert.Equal(t, 0, f.generated, "model must not be called")
		assert.Len(t, f.saved, 1)
	})

	t.Run("model failure still returns a record", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture()
		f.docs = []*sitechat.Document{{Title: "Home", Text: "hello"}}
		f.generateFn = func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("503 service unavailable")
		}

		record, err := f.service().SendMessage(context.Background(), "u1", "w1", "What is here?")

		require.NoError(t, err)
		assert.Equal(t, chat.ApologyMessage, record.Answer)
		assert.Zero(t, record.RelevanceScore)
		assert.Zero(t, record.ResponseTimeMs)
		assert.True(t, record.Degraded)
	})

	t.Run("records the exchange and counts the query", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture()
		f.docs = []*sitechat.Document{{Title: "Stack", Text: "This site uses the python language throughout"}}
		f.generateFn = func(ctx context.Context, prompt string) (string, error) {
			return "It uses the python language", nil
		}

		record, err := f.service().SendMessage(context.Background(), "u1", "w1", "  What language is used?  ")

		require.NoError(t, err)
		assert.Equal(t, "d1", record.ID)
		assert.Equal(t, "u1", record.UserID)
		assert.Equal(t, "w1", record.WebsiteID)
		assert.Equal(t, "What language is used?", record.Question)
		assert.Equal(t, "It uses the python language", record.Answer)
		assert.Equal(t, "test-model", record.ModelID)
		assert.InDelta(t, 0.25, record.RelevanceScore, 1e-9)
		assert.False(t, record.CreatedAt.IsZero())
		assert.Equal(t, 1, f.increments)
	})

	t.Run("website still crawling gets the no-content reply", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture()
		f.website.CrawlStatus = sitechat.CrawlCrawling
		f.docs = []*sitechat.Document{{Title: "Old", Text: "left over from the last crawl"}}

		record, err := f.service().SendMessage(context.Background(), "u1", "w1", "What is here?")

		require.NoError(t, err)
		assert.Equal(t, chat.NoContentMessage, record.Answer)
		assert.Equal(t, 0, f.generated, "model must not be called")
	})

	t.Run("saved exchange is returned when the query count fails", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		f := newServiceFixture()
		f.countErr = errors.New("database is locked")
		svc := f.service()
		svc.Logger = slog.New(slog.NewTextHandler(&buf, nil))

		record, err := svc.SendMessage(context.Background(), "u1", "w1", "hi")

		require.NoError(t, err)
		assert.Equal(t, "d1", record.ID)
		assert.Len(t, f.saved, 1)
		assert.Equal(t, 1, f.increments)
		assert.Contains(t, buf.String(), "query count not updated")
		assert.Contains(t, buf.String(), "database is locked")
	})

	t.Run("returns ENOTFOUND for unknown user", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture()
		_, err := f.service().SendMessage(context.Background(), "nobody", "w1", "hi")

		require.Error(t, err)
		assert.Equal(t, sitechat.ENOTFOUND, sitechat.ErrorCode(err))
		assert.Empty(t, f.saved)
	})

	t.Run("returns ENOTFOUND for unknown website", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture()
		_, err := f.service().SendMessage(context.Background(), "u1", "w2", "hi")

		require.Error(t, err)
		assert.Equal(t, sitechat.ENOTFOUND, sitechat.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for inactive website", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture()
		f.website.IsActive = false

		_, err := f.service().SendMessage(context.Background(), "u1", "w1", "hi")

		require.Error(t, err)
		assert.Equal(t, sitechat.ENOTFOUND, sitechat.ErrorCode(err))
		assert.Equal(t, 0, f.generated)
	})

	t.Run("returns EINVALID for blank question", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture()
		_, err := f.service().SendMessage(context.Background(), "u1", "w1", "   ")

		require.Error(t, err)
		assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
	})
}

func TestService_ListDialogue(t *testing.T) {
	t.Parallel()

	newService := func(total int, got *sitechat.DialogueFilter) *chat.Service {
		return &chat.Service{Dialogues: &mock.DialogueService{
			FindDialoguesFn: func(ctx context.Context, filter sitechat.DialogueFilter) ([]*sitechat.DialogueRecord, error) {
				*got = filter
				return []*sitechat.DialogueRecord{{ID: "d1"}}, nil
			},
			CountDialoguesFn: func(ctx context.Context, filter sitechat.DialogueFilter) (int, error) {
				return total, nil
			},
		}}
	}

	t.Run("defaults page and size", func(t *testing.T) {
		t.Parallel()

		var filter sitechat.DialogueFilter
		page, err := newService(45, &filter).ListDialogue(context.Background(), "u1", "", 0, 0)

		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, sitechat.DefaultPageSize, page.PageSize)
		assert.Equal(t, 3, page.Pages)
		assert.True(t, page.HasNext)
		assert.False(t, page.HasPrev)
		assert.Equal(t, 0, filter.Offset)
		assert.Equal(t, sitechat.DefaultPageSize, filter.Limit)
		assert.Nil(t, filter.WebsiteID)
	})

	t.Run("computes offset and scopes by website", func(t *testing.T) {
		t.Parallel()

		var filter sitechat.DialogueFilter
		page, err := newService(45, &filter).ListDialogue(context.Background(), "u1", "w1", 3, 10)

		require.NoError(t, err)
		assert.Equal(t, 20, filter.Offset)
		assert.Equal(t, 10, filter.Limit)
		require.NotNil(t, filter.WebsiteID)
		assert.Equal(t, "w1", *filter.WebsiteID)
		assert.True(t, page.HasPrev)
		assert.True(t, page.HasNext)
	})

	t.Run("caps page size", func(t *testing.T) {
		t.Parallel()

		var filter sitechat.DialogueFilter
		page, err := newService(0, &filter).ListDialogue(context.Background(), "u1", "", 1, 1000)

		require.NoError(t, err)
		assert.Equal(t, sitechat.MaxPageSize, page.PageSize)
		assert.Equal(t, sitechat.MaxPageSize, filter.Limit)
	})
}

func TestService_DeleteDialogue(t *testing.T) {
	t.Parallel()

	t.Run("deletes and uncounts the query", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture()
		svc := f.service()
		svc.Dialogues = &mock.DialogueService{
			DeleteDialogueFn: func(ctx context.Context, id, userID string) error { return nil },
		}

		require.NoError(t, svc.DeleteDialogue(context.Background(), "d1", "u1"))
		assert.Equal(t, 1, f.decrements)
	})

	t.Run("passes through authorization failures", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture()
		svc := f.service()
		svc.Dialogues = &mock.DialogueService{
			DeleteDialogueFn: func(ctx context.Context, id, userID string) error {
				return sitechat.Errorf(sitechat.EUNAUTHORIZED, "dialogue does not belong to user")
			},
		}

		err := svc.DeleteDialogue(context.Background(), "d1", "u2")

		require.Error(t, err)
		assert.Equal(t, sitechat.EUNAUTHORIZED, sitechat.ErrorCode(err))
		assert.Equal(t, 0, f.decrements)
	})
}

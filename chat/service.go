package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.ChatService = (*Service)(nil)

// Service is the chat surface: it answers messages and manages a user's
// dialogue history.
type Service struct {
	Users     sitechat.UserService
	Websites  sitechat.WebsiteService
	Dialogues sitechat.DialogueService
	Answerer  sitechat.Answerer

	// Logger defaults to discarding output.
	Logger *slog.Logger
}

// SendMessage answers a user's question about a website and records the
// exchange. Returns ENOTFOUND if the user does not exist or the website
// does not exist or is inactive. Once the record is saved the exchange is
// returned even if the user's query count cannot be updated.
func (s *Service) SendMessage(ctx context.Context, userID, websiteID, question string) (*sitechat.DialogueRecord, error) {
	question = strings.TrimSpace(question)
	switch {
	case userID == "":
		return nil, sitechat.Errorf(sitechat.EINVALID, "user ID required")
	case websiteID == "":
		return nil, sitechat.Errorf(sitechat.EINVALID, "website ID required")
	case question == "":
		return nil, sitechat.Errorf(sitechat.EINVALID, "question required")
	}

	if _, err := s.Users.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}
	website, err := s.Websites.FindWebsiteByID(ctx, websiteID)
	if err != nil {
		return nil, err
	}
	if !website.IsActive {
		return nil, sitechat.Errorf(sitechat.ENOTFOUND, "website not found or inactive")
	}

	answer, err := s.Answerer.Answer(ctx, websiteID, question)
	if err != nil {
		return nil, err
	}

	record := &sitechat.DialogueRecord{
		UserID:         userID,
		WebsiteID:      websiteID,
		Question:       question,
		Answer:         answer.Text,
		ResponseTimeMs: answer.ResponseTime.Milliseconds(),
		RelevanceScore: answer.RelevanceScore,
		ModelID:        answer.ModelID,
		Degraded:       answer.Degraded,
	}
	if err := s.Dialogues.CreateDialogue(ctx, record); err != nil {
		return nil, fmt.Errorf("saving dialogue: %w", err)
	}
	if err := s.Users.IncrementQueryCount(ctx, userID); err != nil {
		s.logger().Warn("query count not updated",
			"user", userID,
			"dialogue", record.ID,
			"error", err,
		)
	}

	return record, nil
}

// ListDialogue returns one page of a user's dialogue history, most recent
// first, optionally scoped to a website. Pages are numbered from 1; the
// page size defaults to sitechat.DefaultPageSize and is capped at
// sitechat.MaxPageSize.
func (s *Service) ListDialogue(ctx context.Context, userID, websiteID string, page, pageSize int) (*sitechat.DialoguePage, error) {
	if userID == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "user ID required")
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = sitechat.DefaultPageSize
	}
	pageSize = min(pageSize, sitechat.MaxPageSize)

	filter := sitechat.DialogueFilter{
		UserID: &userID,
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	}
	if websiteID != "" {
		filter.WebsiteID = &websiteID
	}

	records, err := s.Dialogues.FindDialogues(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.Dialogues.CountDialogues(ctx, filter)
	if err != nil {
		return nil, err
	}

	return sitechat.NewDialoguePage(records, page, pageSize, total), nil
}

// DeleteDialogue removes one of the user's records and uncounts the query.
// Returns ENOTFOUND or EUNAUTHORIZED as the dialogue store does.
func (s *Service) DeleteDialogue(ctx context.Context, id, userID string) error {
	if id == "" || userID == "" {
		return sitechat.Errorf(sitechat.EINVALID, "dialogue ID and user ID required")
	}
	if err := s.Dialogues.DeleteDialogue(ctx, id, userID); err != nil {
		return err
	}
	return s.Users.DecrementQueryCount(ctx, userID)
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

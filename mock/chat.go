package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.ChatService = (*ChatService)(nil)

// ChatService is a mock implementation of sitechat.ChatService.
type ChatService struct {
	SendMessageFn    func(ctx context.Context, userID, websiteID, question string) (*sitechat.DialogueRecord, error)
	ListDialogueFn   func(ctx context.Context, userID, websiteID string, page, pageSize int) (*sitechat.DialoguePage, error)
	DeleteDialogueFn func(ctx context.Context, id, userID string) error
}

func (s *ChatService) SendMessage(ctx context.Context, userID, websiteID, question string) (*sitechat.DialogueRecord, error) {
	return s.SendMessageFn(ctx, userID, websiteID, question)
}

func (s *ChatService) ListDialogue(ctx context.Context, userID, websiteID string, page, pageSize int) (*sitechat.DialoguePage, error) {
	return s.ListDialogueFn(ctx, userID, websiteID, page, pageSize)
}

func (s *ChatService) DeleteDialogue(ctx context.Context, id, userID string) error {
	return s.DeleteDialogueFn(ctx, id, userID)
}

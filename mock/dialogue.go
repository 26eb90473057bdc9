package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.DialogueService = (*DialogueService)(nil)

// DialogueService is a mock implementation of sitechat.DialogueService.
type DialogueService struct {
	CreateDialogueFn func(ctx context.Context, record *sitechat.DialogueRecord) error
	FindDialoguesFn  func(ctx context.Context, filter sitechat.DialogueFilter) ([]*sitechat.DialogueRecord, error)
	CountDialoguesFn func(ctx context.Context, filter sitechat.DialogueFilter) (int, error)
	DeleteDialogueFn func(ctx context.Context, id, userID string) error
}

func (s *DialogueService) CreateDialogue(ctx context.Context, record *sitechat.DialogueRecord) error {
	return s.CreateDialogueFn(ctx, record)
}

func (s *DialogueService) FindDialogues(ctx context.Context, filter sitechat.DialogueFilter) ([]*sitechat.DialogueRecord, error) {
	return s.FindDialoguesFn(ctx, filter)
}

func (s *DialogueService) CountDialogues(ctx context.Context, filter sitechat.DialogueFilter) (int, error) {
	return s.CountDialoguesFn(ctx, filter)
}

func (s *DialogueService) DeleteDialogue(ctx context.Context, id, userID string) error {
	return s.DeleteDialogueFn(ctx, id, userID)
}

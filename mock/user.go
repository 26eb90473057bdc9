package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.UserService = (*UserService)(nil)

// UserService is a mock implementation of sitechat.UserService.
type UserService struct {
	CreateUserFn          func(ctx context.Context, user *sitechat.User) error
	FindUserByIDFn        func(ctx context.Context, id string) (*sitechat.User, error)
	IncrementQueryCountFn func(ctx context.Context, id string) error
	DecrementQueryCountFn func(ctx context.Context, id string) error
}

func (s *UserService) CreateUser(ctx context.Context, user *sitechat.User) error {
	return s.CreateUserFn(ctx, user)
}

func (s *UserService) FindUserByID(ctx context.Context, id string) (*sitechat.User, error) {
	return s.FindUserByIDFn(ctx, id)
}

func (s *UserService) IncrementQueryCount(ctx context.Context, id string) error {
	return s.IncrementQueryCountFn(ctx, id)
}

func (s *UserService) DecrementQueryCount(ctx context.Context, id string) error {
	return s.DecrementQueryCountFn(ctx, id)
}

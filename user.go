package sitechat

import (
	"context"
	"time"
)

// User is the subset of a user profile the chat core relies on.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	TotalQueries int        `json:"totalQueries"`
	LastActiveAt *time.Time `json:"lastActiveAt"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Validate returns an error if the user contains invalid fields.
func (u *User) Validate() error {
	if u.Name == "" {
		return Errorf(EINVALID, "user name required")
	}
	return nil
}

// UserService represents the user directory.
type UserService interface {
	// CreateUser creates a new user.
	CreateUser(ctx context.Context, user *User) error

	// FindUserByID retrieves a user by ID.
	// Returns ENOTFOUND if user does not exist.
	FindUserByID(ctx context.Context, id string) (*User, error)

	// IncrementQueryCount records one more question asked by the user.
	IncrementQueryCount(ctx context.Context, id string) error

	// DecrementQueryCount reverses IncrementQueryCount. Never goes below zero.
	DecrementQueryCount(ctx context.Context, id string) error
}

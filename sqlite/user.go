package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/sitechat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitechat.UserService = (*UserService)(nil)

// UserService implements sitechat.UserService using SQLite.
type UserService struct {
	db *DB
}

// NewUserService creates a new UserService.
func NewUserService(db *DB) *UserService {
	return &UserService{db: db}
}

// CreateUser creates a new user.
func (s *UserService) CreateUser(ctx context.Context, user *sitechat.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	user.ID = uuid.New().String()
	user.TotalQueries = 0
	user.LastActiveAt = nil
	user.CreatedAt = s.db.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, total_queries, last_active_at, created_at)
		VALUES (?, ?, 0, NULL, ?)
	`, user.ID, user.Name, formatTime(user.CreatedAt))

	return err
}

// FindUserByID retrieves a user by ID.
func (s *UserService) FindUserByID(ctx context.Context, id string) (*sitechat.User, error) {
	var user sitechat.User
	var lastActiveAt sql.NullString
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, total_queries, last_active_at, created_at
		FROM users
		WHERE id = ?
	`, id).Scan(&user.ID, &user.Name, &user.TotalQueries, &lastActiveAt, &createdAt)

	if err == sql.ErrNoRows {
		return nil, sitechat.Errorf(sitechat.ENOTFOUND, "user not found")
	}
	if err != nil {
		return nil, err
	}

	if user.LastActiveAt, err = parseNullTime(lastActiveAt, "last_active_at"); err != nil {
		return nil, err
	}
	if user.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &user, nil
}

// IncrementQueryCount adds one to the user's query count and marks the
// user active.
func (s *UserService) IncrementQueryCount(ctx context.Context, id string) error {
	return s.adjustQueryCount(ctx, id, `
		UPDATE users
		SET total_queries = total_queries + 1, last_active_at = ?
		WHERE id = ?
	`, formatTime(s.db.Now()), id)
}

// DecrementQueryCount subtracts one from the user's query count.
func (s *UserService) DecrementQueryCount(ctx context.Context, id string) error {
	return s.adjustQueryCount(ctx, id, `
		UPDATE users
		SET total_queries = MAX(total_queries - 1, 0)
		WHERE id = ?
	`, id)
}

func (s *UserService) adjustQueryCount(ctx context.Context, id string, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sitechat.Errorf(sitechat.ENOTFOUND, "user %q not found", id)
	}
	return nil
}

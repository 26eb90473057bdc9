package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fwojciec/sitechat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitechat.DialogueService = (*DialogueService)(nil)

// DialogueService implements sitechat.DialogueService using SQLite.
type DialogueService struct {
	db *DB
}

// NewDialogueService creates a new DialogueService.
func NewDialogueService(db *DB) *DialogueService {
	return &DialogueService{db: db}
}

const dialogueColumns = "id, user_id, website_id, question, answer, response_time_ms, relevance_score, model_id, degraded, created_at"

// CreateDialogue appends a record.
func (s *DialogueService) CreateDialogue(ctx context.Context, record *sitechat.DialogueRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	record.ID = uuid.New().String()
	record.CreatedAt = s.db.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dialogues (`+dialogueColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.UserID, record.WebsiteID, record.Question, record.Answer, record.ResponseTimeMs,
		record.RelevanceScore, record.ModelID, record.Degraded, formatTime(record.CreatedAt))

	return err
}

// FindDialogues retrieves records matching the filter, most recent first.
func (s *DialogueService) FindDialogues(ctx context.Context, filter sitechat.DialogueFilter) ([]*sitechat.DialogueRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + dialogueColumns + " FROM dialogues")
	dialogueWhere(&query, &args, filter)
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*sitechat.DialogueRecord
	for rows.Next() {
		record, err := scanDialogue(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// CountDialogues returns the number of records matching the filter.
func (s *DialogueService) CountDialogues(ctx context.Context, filter sitechat.DialogueFilter) (int, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT COUNT(*) FROM dialogues")
	dialogueWhere(&query, &args, filter)

	var n int
	err := s.db.QueryRowContext(ctx, query.String(), args...).Scan(&n)
	return n, err
}

// DeleteDialogue removes a record owned by userID.
func (s *DialogueService) DeleteDialogue(ctx context.Context, id, userID string) error {
	var owner string
	err := s.db.QueryRowContext(ctx, "SELECT user_id FROM dialogues WHERE id = ?", id).Scan(&owner)
	if err == sql.ErrNoRows {
		return sitechat.Errorf(sitechat.ENOTFOUND, "dialogue not found")
	}
	if err != nil {
		return err
	}
	if owner != userID {
		return sitechat.Errorf(sitechat.EUNAUTHORIZED, "dialogue does not belong to user")
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM dialogues WHERE id = ? AND user_id = ?", id, userID)
	return err
}

func dialogueWhere(query *strings.Builder, args *[]any, filter sitechat.DialogueFilter) {
	query.WriteString(" WHERE 1=1")
	if filter.UserID != nil {
		query.WriteString(" AND user_id = ?")
		*args = append(*args, *filter.UserID)
	}
	if filter.WebsiteID != nil {
		query.WriteString(" AND website_id = ?")
		*args = append(*args, *filter.WebsiteID)
	}
}

func scanDialogue(row scanner) (*sitechat.DialogueRecord, error) {
	var record sitechat.DialogueRecord
	var createdAt string

	if err := row.Scan(&record.ID, &record.UserID, &record.WebsiteID, &record.Question, &record.Answer,
		&record.ResponseTimeMs, &record.RelevanceScore, &record.ModelID, &record.Degraded, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if record.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &record, nil
}

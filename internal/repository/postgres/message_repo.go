package postgres

import (
	"context"
	"database/sql"

	"eventhub/internal/domain"
)

type messageRepository struct {
	DB *sql.DB
}

func NewMessageRepository(db *sql.DB) domain.MessageRepository {
	return &messageRepository{
		DB: db,
	}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (sender_id, event_id, content, message_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		msg.SenderID, msg.EventID, msg.Content, string(msg.MessageType), msg.CreatedAt,
	).Scan(&msg.ID)
}

func (r *messageRepository) CountStudentMessages(ctx context.Context, eventID, senderID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM messages
		WHERE event_id = $1 AND sender_id = $2 AND message_type = 'student'
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID, senderID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *messageRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Message, error) {
	query := `
		SELECT id, sender_id, event_id, content, message_type, created_at
		FROM messages
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := make([]*domain.Message, 0)
	for rows.Next() {
		msg := &domain.Message{}
		var messageType string
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.EventID, &msg.Content, &messageType, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msg.MessageType = domain.MessageType(messageType)
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

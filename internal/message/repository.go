package message

import (
	"context"
	"database/sql"
	"time"

	"studentmart-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	ListConversations(ctx context.Context, userID string) ([]Conversation, error)
	GetConversation(ctx context.Context, id string) (*Conversation, error)
	// FindConversation looks up the thread between two participants
	// regardless of who opened it.
	FindConversation(ctx context.Context, userA, userB string) (*Conversation, error)
	CreateConversation(ctx context.Context, participants []string) (*Conversation, error)
	ListMessages(ctx context.Context, conversationID string) ([]Message, error)
	// AppendMessage inserts the message and bumps the conversation's
	// last-message fields in one transaction.
	AppendMessage(ctx context.Context, conversationID, senderID, text string) (*Message, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const conversationColumns = `id, participants, last_message_text, last_message_time, created_at`

func scanConversation(row interface{ Scan(...any) error }) (Conversation, error) {
	var c Conversation
	err := row.Scan(
		&c.ID, pq.Array(&c.Participants),
		&c.LastMessageText, &c.LastMessageTime, &c.CreatedAt,
	)
	return c, err
}

func (r *repository) ListConversations(ctx context.Context, userID string) ([]Conversation, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListConversations"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+conversationColumns+`
		FROM conversations
		WHERE $1 = ANY(participants)
		ORDER BY last_message_time DESC
		LIMIT 50`, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	conversations := make([]Conversation, 0)
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

func (r *repository) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE id = $1`, id)

	c, err := scanConversation(row)
	if err == sql.ErrNoRows {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindConversation(ctx context.Context, userA, userB string) (*Conversation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+conversationColumns+`
		FROM conversations
		WHERE participants @> $1 AND participants <@ $1`,
		pq.Array([]string{userA, userB}))

	c, err := scanConversation(row)
	if err == sql.ErrNoRows {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) CreateConversation(ctx context.Context, participants []string) (*Conversation, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO conversations (participants, last_message_text, last_message_time)
		VALUES ($1, '', NOW())
		RETURNING `+conversationColumns,
		pq.Array(participants))

	c, err := scanConversation(row)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListMessages(ctx context.Context, conversationID string) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, conversation_id, sender_id, text, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *repository) AppendMessage(ctx context.Context, conversationID, senderID, text string) (*Message, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AppendMessage"),
		zap.String("conversation_id", conversationID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var (
		m  Message
		at time.Time
	)
	err = tx.QueryRowContext(ctx, `
		INSERT INTO messages (conversation_id, sender_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, conversation_id, sender_id, text, created_at`,
		conversationID, senderID, text,
	).Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Text, &m.CreatedAt)
	if err != nil {
		log.Error("message insert failed", zap.Error(err))
		return nil, err
	}
	at = m.CreatedAt

	_, err = tx.ExecContext(ctx, `
		UPDATE conversations
		SET last_message_text = $1, last_message_time = $2
		WHERE id = $3`,
		text, at, conversationID)
	if err != nil {
		log.Error("conversation bump failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &m, nil
}

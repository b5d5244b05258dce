package message

import (
	"context"
	"errors"
	"slices"
	"strings"

	"studentmart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ListConversations(ctx context.Context, userID string) ([]Conversation, error)
	GetMessages(ctx context.Context, userID, conversationID string) ([]Message, error)
	Send(ctx context.Context, senderID string, input SendInput) (*Message, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListConversations(ctx context.Context, userID string) ([]Conversation, error) {
	return s.repo.ListConversations(ctx, userID)
}

func (s *service) GetMessages(ctx context.Context, userID, conversationID string) ([]Message, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(conv.Participants, userID) {
		return nil, ErrNotParticipant
	}
	return s.repo.ListMessages(ctx, conversationID)
}

func (s *service) Send(ctx context.Context, senderID string, input SendInput) (*Message, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Send"),
		zap.String("sender_id", senderID),
	)

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrEmptyText
	}

	conversationID := input.ConversationID
	if conversationID == "" {
		if input.RecipientID == "" {
			return nil, ErrNoRecipient
		}
		conv, err := s.repo.FindConversation(ctx, senderID, input.RecipientID)
		if errors.Is(err, ErrConversationNotFound) {
			conv, err = s.repo.CreateConversation(ctx, []string{senderID, input.RecipientID})
			if err != nil {
				log.Error("failed to open conversation", zap.Error(err))
				return nil, err
			}
			log.Info("conversation opened", zap.String("conversation_id", conv.ID))
		} else if err != nil {
			return nil, err
		}
		conversationID = conv.ID
	} else {
		conv, err := s.repo.GetConversation(ctx, conversationID)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(conv.Participants, senderID) {
			return nil, ErrNotParticipant
		}
	}

	return s.repo.AppendMessage(ctx, conversationID, senderID, text)
}

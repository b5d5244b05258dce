package message

import "errors"

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant of this conversation")
	ErrEmptyText            = errors.New("message text is required")
	ErrNoRecipient          = errors.New("a conversation or recipient is required")
)

package message

import "time"

// Conversation is a two-party thread between a buyer and an admin.
// Participants are unordered; either side sees the same conversation.
type Conversation struct {
	ID              string    `json:"id"`
	Participants    []string  `json:"participants"`
	LastMessageText string    `json:"last_message_text"`
	LastMessageTime time.Time `json:"last_message_time"`
	CreatedAt       time.Time `json:"created_at"`
}

type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

// SendInput addresses a message either to an existing conversation or,
// when ConversationID is empty, to a recipient (opening the thread on
// first contact).
type SendInput struct {
	ConversationID string `json:"conversation_id"`
	RecipientID    string `json:"recipient_id"`
	Text           string `json:"text"`
}

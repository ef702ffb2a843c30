package models

import (
	"fmt"
	"time"
)

// Message collection constants
const (
	// MessagePartition is the single partition every chat message is written under
	MessagePartition = "MESSAGES"

	MaxMessageTextLength = 500
	MaxAuthorLength      = 50
	DefaultAuthor        = "Anonymous"

	// DefaultColor is used when a message or RSVP omits its color
	DefaultColor = "#0EA5E9"
)

// ChatMessage represents a message posted to the shared chat. Messages are
// never mutated; the store evicts them once TTL (epoch seconds) has passed.
type ChatMessage struct {
	ID        string `json:"id" db:"id"`
	Text      string `json:"text" db:"text"`
	Author    string `json:"author" db:"author"`
	Color     string `json:"color" db:"color"`
	Timestamp int64  `json:"timestamp" db:"timestamp"`
	TTL       int64  `json:"ttl" db:"ttl"`
}

// CreateMessageRequest is the body of POST /messages. Pointer fields
// distinguish an omitted field from an empty one.
type CreateMessageRequest struct {
	Text   *string `json:"text"`
	Author *string `json:"author"`
	Color  *string `json:"color"`
}

// NewChatMessageID builds a message id from the creation time in epoch
// milliseconds and a random suffix. Ids sort in creation order.
func NewChatMessageID(createdAt time.Time, suffix string) string {
	return fmt.Sprintf("%d-%s", createdAt.UnixMilli(), suffix)
}

// NewChatMessage creates a message stamped with createdAt that expires after ttl
func NewChatMessage(id, text, author, color string, createdAt time.Time, ttl time.Duration) *ChatMessage {
	return &ChatMessage{
		ID:        id,
		Text:      text,
		Author:    author,
		Color:     color,
		Timestamp: createdAt.UnixMilli(),
		TTL:       createdAt.Add(ttl).Unix(),
	}
}

// IsExpired reports whether the message expiry has passed at now
func (m *ChatMessage) IsExpired(now time.Time) bool {
	return m.TTL > 0 && m.TTL <= now.Unix()
}

package storage

import (
	"context"

	"freshsilver-api/internal/models"
)

// MessageStore is the append-only chat message collection. All messages live
// under a single partition ordered by id.
type MessageStore interface {
	// PutMessage writes a message
	PutMessage(ctx context.Context, msg *models.ChatMessage) error

	// RecentMessages returns at most limit messages, newest first
	RecentMessages(ctx context.Context, limit int) ([]*models.ChatMessage, error)
}

// RsvpStore is the RSVP collection keyed by (eventId, visitorId)
type RsvpStore interface {
	// PutRsvp writes an entry, replacing any entry with the same key
	PutRsvp(ctx context.Context, entry *models.RsvpEntry) error

	// ListRsvps returns every entry of an event in store order
	ListRsvps(ctx context.Context, eventID string) ([]*models.RsvpEntry, error)

	// DeleteRsvp removes an entry. Deleting a missing key is not an error.
	DeleteRsvp(ctx context.Context, eventID, visitorID string) error
}

// Store combines both collections behind one backend
type Store interface {
	MessageStore
	RsvpStore

	// Close cleans up any resources used by the storage implementation
	Close() error
}

// StorageConfig represents configuration for storage providers
type StorageConfig struct {
	Type          string `json:"type" yaml:"type"` // "dynamodb", "sqlite" or "memory"
	MessagesTable string `json:"messages_table" yaml:"messages_table"`
	RsvpTable     string `json:"rsvp_table" yaml:"rsvp_table"`
	Region        string `json:"region" yaml:"region"`
	Endpoint      string `json:"endpoint" yaml:"endpoint"`
	SQLitePath    string `json:"sqlite_path" yaml:"sqlite_path"`
	MaxOpenConns  int    `json:"max_open_conns" yaml:"max_open_conns"`
}

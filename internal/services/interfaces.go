package services

import (
	"context"

	"freshsilver-api/internal/models"
)

// MessageService defines the chat message operations
type MessageService interface {
	// ListMessages returns the most recent messages, oldest first
	ListMessages(ctx context.Context) ([]*models.ChatMessage, error)
	// CreateMessage validates the request and appends a new message
	CreateMessage(ctx context.Context, req *models.CreateMessageRequest) (*models.ChatMessage, error)
}

// RsvpService defines the event RSVP operations
type RsvpService interface {
	ListRsvps(ctx context.Context, eventID string) ([]*models.RsvpEntry, error)
	// CreateRsvp creates or replaces the RSVP of visitorID for eventID
	CreateRsvp(ctx context.Context, eventID, visitorID string, req *models.CreateRsvpRequest) (*models.RsvpEntry, error)
	// DeleteRsvp removes the RSVP; removing an absent RSVP succeeds
	DeleteRsvp(ctx context.Context, eventID, visitorID string) error
}

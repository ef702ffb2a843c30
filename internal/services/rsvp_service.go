package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"freshsilver-api/internal/adapters/storage"
	"freshsilver-api/internal/models"
)

var rsvpNameRule = fmt.Sprintf("required,max=%d", models.MaxRsvpNameLength)

// rsvpService implements the RsvpService interface
type rsvpService struct {
	store     storage.RsvpStore
	validator *validator.Validate
	config    ServiceConfig
	now       func() time.Time
}

// NewRsvpService creates a new RSVP service instance
func NewRsvpService(store storage.RsvpStore, config *ServiceConfig) RsvpService {
	return &rsvpService{
		store:     store,
		validator: validator.New(),
		config:    config.withDefaults(),
		now:       time.Now,
	}
}

// ListRsvps returns every attendee of eventID in store order
func (s *rsvpService) ListRsvps(ctx context.Context, eventID string) ([]*models.RsvpEntry, error) {
	entries, err := s.store.ListRsvps(ctx, eventID)
	if err != nil {
		return nil, StorageFailure(err)
	}
	if entries == nil {
		entries = []*models.RsvpEntry{}
	}
	return entries, nil
}

// CreateRsvp upserts the RSVP keyed by (eventID, visitorID). The name is
// checked before the visitor id.
func (s *rsvpService) CreateRsvp(ctx context.Context, eventID, visitorID string, req *models.CreateRsvpRequest) (*models.RsvpEntry, error) {
	if req == nil {
		req = &models.CreateRsvpRequest{}
	}

	name := trimmed(req.Name)
	if err := s.validator.Var(name, rsvpNameRule); err != nil {
		return nil, BadRequest(MsgInvalidName)
	}
	if visitorID == "" {
		return nil, BadRequest(MsgMissingVisitorID)
	}

	color := s.config.DefaultColor
	if req.Color != nil && *req.Color != "" {
		color = *req.Color
	}

	entry := models.NewRsvpEntry(eventID, visitorID, name, color, s.now())
	if err := s.store.PutRsvp(ctx, entry); err != nil {
		return nil, StorageFailure(err)
	}

	return entry, nil
}

// DeleteRsvp removes the RSVP unconditionally
func (s *rsvpService) DeleteRsvp(ctx context.Context, eventID, visitorID string) error {
	if err := s.store.DeleteRsvp(ctx, eventID, visitorID); err != nil {
		return StorageFailure(err)
	}
	return nil
}

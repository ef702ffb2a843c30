package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"freshsilver-api/internal/adapters/storage"
	"freshsilver-api/internal/models"
)

var (
	messageTextRule = fmt.Sprintf("required,max=%d", models.MaxMessageTextLength)
	authorRule      = fmt.Sprintf("max=%d", models.MaxAuthorLength)
)

// messageService implements the MessageService interface
type messageService struct {
	store     storage.MessageStore
	validator *validator.Validate
	config    ServiceConfig
	now       func() time.Time
	newSuffix func() string
}

// NewMessageService creates a new message service instance
func NewMessageService(store storage.MessageStore, config *ServiceConfig) MessageService {
	return &messageService{
		store:     store,
		validator: validator.New(),
		config:    config.withDefaults(),
		now:       time.Now,
		newSuffix: randomSuffix,
	}
}

// ListMessages returns up to HistoryLimit messages, oldest first
func (s *messageService) ListMessages(ctx context.Context) ([]*models.ChatMessage, error) {
	messages, err := s.store.RecentMessages(ctx, s.config.HistoryLimit)
	if err != nil {
		return nil, StorageFailure(err)
	}

	// The store answers newest first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// CreateMessage validates, stamps and stores a new message
func (s *messageService) CreateMessage(ctx context.Context, req *models.CreateMessageRequest) (*models.ChatMessage, error) {
	if req == nil {
		req = &models.CreateMessageRequest{}
	}

	text := trimmed(req.Text)
	author := models.DefaultAuthor
	if req.Author != nil {
		author = strings.TrimSpace(*req.Author)
	}
	color := s.config.DefaultColor
	if req.Color != nil && *req.Color != "" {
		color = *req.Color
	}

	if err := s.validator.Var(text, messageTextRule); err != nil {
		return nil, BadRequest(MsgInvalidMessageText)
	}
	if err := s.validator.Var(author, authorRule); err != nil {
		return nil, BadRequest(MsgAuthorTooLong)
	}

	now := s.now()
	id := models.NewChatMessageID(now, s.newSuffix())
	msg := models.NewChatMessage(id, text, author, color, now, s.config.MessageTTL)

	if err := s.store.PutMessage(ctx, msg); err != nil {
		return nil, StorageFailure(err)
	}

	return msg, nil
}

// randomSuffix returns eight hex characters of a random UUID
func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

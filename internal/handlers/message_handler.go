package handlers

import (
	"context"
	"net/http"

	"freshsilver-api/internal/models"
	"freshsilver-api/internal/services"
)

// MessageHandler serves the chat message routes
type MessageHandler struct {
	messageService services.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// MessagesResponse is the body of a message listing
type MessagesResponse struct {
	Messages []*models.ChatMessage `json:"messages"`
}

// MessageResponse is the body of a created message
type MessageResponse struct {
	Message *models.ChatMessage `json:"message"`
}

// HandleList serves GET /messages
// @Summary List messages
// @Description Return the most recent chat messages, oldest first
// @Tags messages
// @Produce json
// @Success 200 {object} MessagesResponse
// @Failure 500 {object} ErrorResponse
// @Router /messages [get]
func (h *MessageHandler) HandleList(ctx context.Context, params routeParams) (int, interface{}, error) {
	messages, err := h.messageService.ListMessages(ctx)
	if err != nil {
		return 0, nil, err
	}
	if messages == nil {
		messages = []*models.ChatMessage{}
	}
	return http.StatusOK, MessagesResponse{Messages: messages}, nil
}

// HandleCreate serves POST /messages
// @Summary Post a message
// @Description Append a chat message. Author defaults to Anonymous.
// @Tags messages
// @Accept json
// @Produce json
// @Param message body models.CreateMessageRequest true "Message"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) HandleCreate(ctx context.Context, params routeParams) (int, interface{}, error) {
	var req models.CreateMessageRequest
	if err := decodeBody(params.body, &req); err != nil {
		return 0, nil, err
	}

	msg, err := h.messageService.CreateMessage(ctx, &req)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, MessageResponse{Message: msg}, nil
}

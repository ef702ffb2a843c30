package handlers

import (
	"context"
	"net/http"

	"freshsilver-api/internal/models"
	"freshsilver-api/internal/services"
)

// RsvpHandler serves the event RSVP routes
type RsvpHandler struct {
	rsvpService services.RsvpService
}

// NewRsvpHandler creates a new RSVP handler
func NewRsvpHandler(rsvpService services.RsvpService) *RsvpHandler {
	return &RsvpHandler{
		rsvpService: rsvpService,
	}
}

// AttendeesResponse is the body of an RSVP listing
type AttendeesResponse struct {
	Attendees []*models.RsvpEntry `json:"attendees"`
}

// RsvpResponse is the body of a stored RSVP
type RsvpResponse struct {
	Rsvp *models.RsvpEntry `json:"rsvp"`
}

// DeletedResponse is the body of an RSVP removal
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

// HandleList serves GET /rsvp/{eventId}
// @Summary List attendees
// @Tags rsvp
// @Produce json
// @Param eventId path string true "Event id"
// @Success 200 {object} AttendeesResponse
// @Failure 500 {object} ErrorResponse
// @Router /rsvp/{eventId} [get]
func (h *RsvpHandler) HandleList(ctx context.Context, params routeParams) (int, interface{}, error) {
	attendees, err := h.rsvpService.ListRsvps(ctx, params.eventID)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, AttendeesResponse{Attendees: attendees}, nil
}

// HandleCreate serves POST /rsvp/{eventId}; the visitor comes from the header
// @Summary RSVP to an event
// @Description Create or replace the visitor's RSVP
// @Tags rsvp
// @Accept json
// @Produce json
// @Param eventId path string true "Event id"
// @Param X-Visitor-Id header string true "Visitor id"
// @Param rsvp body models.CreateRsvpRequest true "RSVP"
// @Success 201 {object} RsvpResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /rsvp/{eventId} [post]
func (h *RsvpHandler) HandleCreate(ctx context.Context, params routeParams) (int, interface{}, error) {
	var req models.CreateRsvpRequest
	if err := decodeBody(params.body, &req); err != nil {
		return 0, nil, err
	}

	entry, err := h.rsvpService.CreateRsvp(ctx, params.eventID, params.visitorID, &req)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, RsvpResponse{Rsvp: entry}, nil
}

// HandleDelete serves DELETE /rsvp/{eventId}/{visitorId}
// @Summary Cancel an RSVP
// @Description Removing an absent RSVP also succeeds
// @Tags rsvp
// @Produce json
// @Param eventId path string true "Event id"
// @Param visitorId path string true "Visitor id"
// @Success 200 {object} DeletedResponse
// @Failure 500 {object} ErrorResponse
// @Router /rsvp/{eventId}/{visitorId} [delete]
func (h *RsvpHandler) HandleDelete(ctx context.Context, params routeParams) (int, interface{}, error) {
	if err := h.rsvpService.DeleteRsvp(ctx, params.eventID, params.visitorID); err != nil {
		return 0, nil, err
	}
	return http.StatusOK, DeletedResponse{Deleted: true}, nil
}

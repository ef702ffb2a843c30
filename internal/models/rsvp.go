package models

import "time"

// MaxRsvpNameLength bounds the display name of an attendee
const MaxRsvpNameLength = 30

// RsvpEntry is an attendee of an event. It is keyed by (EventID, VisitorID);
// writing the same pair again replaces the entry.
type RsvpEntry struct {
	EventID   string `json:"eventId" db:"event_id"`
	VisitorID string `json:"visitorId" db:"visitor_id"`
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Color     string `json:"color" db:"color"`
	Timestamp int64  `json:"timestamp" db:"timestamp"`
}

// CreateRsvpRequest is the body of POST /rsvp/{eventId}
type CreateRsvpRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// RsvpID composes the public id of an RSVP. Two visitors presenting the same
// visitor id share an entry.
func RsvpID(eventID, visitorID string) string {
	return eventID + "-" + visitorID
}

// NewRsvpEntry creates an RSVP stamped with createdAt
func NewRsvpEntry(eventID, visitorID, name, color string, createdAt time.Time) *RsvpEntry {
	return &RsvpEntry{
		EventID:   eventID,
		VisitorID: visitorID,
		ID:        RsvpID(eventID, visitorID),
		Name:      name,
		Color:     color,
		Timestamp: createdAt.UnixMilli(),
	}
}

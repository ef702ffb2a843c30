package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"freshsilver-api/internal/models"
)

// MemoryStore is an in-memory implementation of Store for tests and local runs
type MemoryStore struct {
	mu       sync.RWMutex
	messages map[string]*models.ChatMessage
	rsvps    map[string]map[string]*models.RsvpEntry
	now      func() time.Time
	failWith error
	calls    int
}

// NewMemoryStore creates a new MemoryStore instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages: make(map[string]*models.ChatMessage),
		rsvps:    make(map[string]map[string]*models.RsvpEntry),
		now:      time.Now,
	}
}

// PutMessage implements MessageStore.PutMessage
func (m *MemoryStore) PutMessage(ctx context.Context, msg *models.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failWith != nil {
		return NewStorageError("PutMessage", "", m.failWith, false)
	}
	if msg == nil || msg.ID == "" {
		return NewStorageError("PutMessage", "", ErrInvalidKey, false)
	}

	stored := *msg
	m.messages[msg.ID] = &stored
	return nil
}

// RecentMessages implements MessageStore.RecentMessages. Expired messages are
// skipped the way the managed store evicts them.
func (m *MemoryStore) RecentMessages(ctx context.Context, limit int) ([]*models.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failWith != nil {
		return nil, NewStorageError("RecentMessages", models.MessagePartition, m.failWith, false)
	}

	now := m.now()
	messages := make([]*models.ChatMessage, 0, len(m.messages))
	for _, msg := range m.messages {
		if msg.IsExpired(now) {
			continue
		}
		stored := *msg
		messages = append(messages, &stored)
	}

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].ID > messages[j].ID
	})

	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}

	return messages, nil
}

// PutRsvp implements RsvpStore.PutRsvp
func (m *MemoryStore) PutRsvp(ctx context.Context, entry *models.RsvpEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failWith != nil {
		return NewStorageError("PutRsvp", "", m.failWith, false)
	}
	if entry == nil || entry.EventID == "" || entry.VisitorID == "" {
		return NewStorageError("PutRsvp", "", ErrInvalidKey, false)
	}

	attendees, ok := m.rsvps[entry.EventID]
	if !ok {
		attendees = make(map[string]*models.RsvpEntry)
		m.rsvps[entry.EventID] = attendees
	}

	stored := *entry
	attendees[entry.VisitorID] = &stored
	return nil
}

// ListRsvps implements RsvpStore.ListRsvps, ordered by visitor id like a
// DynamoDB range key
func (m *MemoryStore) ListRsvps(ctx context.Context, eventID string) ([]*models.RsvpEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failWith != nil {
		return nil, NewStorageError("ListRsvps", eventID, m.failWith, false)
	}

	entries := make([]*models.RsvpEntry, 0, len(m.rsvps[eventID]))
	for _, entry := range m.rsvps[eventID] {
		stored := *entry
		entries = append(entries, &stored)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].VisitorID < entries[j].VisitorID
	})

	return entries, nil
}

// DeleteRsvp implements RsvpStore.DeleteRsvp
func (m *MemoryStore) DeleteRsvp(ctx context.Context, eventID, visitorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failWith != nil {
		return NewStorageError("DeleteRsvp", models.RsvpID(eventID, visitorID), m.failWith, false)
	}

	if attendees, ok := m.rsvps[eventID]; ok {
		delete(attendees, visitorID)
		if len(attendees) == 0 {
			delete(m.rsvps, eventID)
		}
	}
	return nil
}

// Close implements Store.Close
func (m *MemoryStore) Close() error {
	return nil
}

// Test helpers

// SetClock replaces the clock used for expiry checks
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// FailWith makes every subsequent operation fail with err; nil restores normal behaviour
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Calls returns the number of store operations performed
func (m *MemoryStore) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// MessageCount returns the number of stored messages, expired ones included
func (m *MemoryStore) MessageCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}

// RsvpCount returns the number of stored entries for an event
func (m *MemoryStore) RsvpCount(eventID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rsvps[eventID])
}

// Reset clears all stored items and counters
func (m *MemoryStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = make(map[string]*models.ChatMessage)
	m.rsvps = make(map[string]map[string]*models.RsvpEntry)
	m.failWith = nil
	m.calls = 0
}

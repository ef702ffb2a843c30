package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"freshsilver-api/internal/models"
)

// SQLiteStore implements Store on a local SQLite database. It is meant for
// local development; expired messages are filtered on read the way the
// managed store evicts them.
type SQLiteStore struct {
	db     *sql.DB
	logger *logrus.Logger
	now    func() time.Time
}

// NewSQLiteStore creates a store on a migrated database
func NewSQLiteStore(db *sql.DB, logger *logrus.Logger) *SQLiteStore {
	if logger == nil {
		logger = logrus.New()
	}
	return &SQLiteStore{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// PutMessage implements MessageStore.PutMessage
func (s *SQLiteStore) PutMessage(ctx context.Context, msg *models.ChatMessage) error {
	query := `
		INSERT OR REPLACE INTO messages (id, text, author, color, timestamp, ttl)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, msg.ID, msg.Text, msg.Author, msg.Color, msg.Timestamp, msg.TTL)
	if err != nil {
		s.logger.WithError(err).WithField("message_id", msg.ID).Error("Failed to insert message")
		return classifySQLiteError("PutMessage", msg.ID, err)
	}

	return nil
}

// RecentMessages implements MessageStore.RecentMessages
func (s *SQLiteStore) RecentMessages(ctx context.Context, limit int) ([]*models.ChatMessage, error) {
	query := `
		SELECT id, text, author, color, timestamp, ttl
		FROM messages
		WHERE ttl = 0 OR ttl > ?
		ORDER BY id DESC
		LIMIT ?
	`
	if limit <= 0 {
		limit = -1 // SQLite treats a negative limit as unbounded
	}

	rows, err := s.db.QueryContext(ctx, query, s.now().Unix(), limit)
	if err != nil {
		return nil, classifySQLiteError("RecentMessages", models.MessagePartition, err)
	}
	defer rows.Close()

	messages := []*models.ChatMessage{}
	for rows.Next() {
		msg := &models.ChatMessage{}
		if err := rows.Scan(&msg.ID, &msg.Text, &msg.Author, &msg.Color, &msg.Timestamp, &msg.TTL); err != nil {
			return nil, NewStorageError("RecentMessages", models.MessagePartition, err, false)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, classifySQLiteError("RecentMessages", models.MessagePartition, err)
	}

	return messages, nil
}

// PutRsvp implements RsvpStore.PutRsvp
func (s *SQLiteStore) PutRsvp(ctx context.Context, entry *models.RsvpEntry) error {
	query := `
		INSERT OR REPLACE INTO rsvps (event_id, visitor_id, id, name, color, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, entry.EventID, entry.VisitorID, entry.ID, entry.Name, entry.Color, entry.Timestamp)
	if err != nil {
		s.logger.WithError(err).WithField("rsvp_id", entry.ID).Error("Failed to upsert rsvp")
		return classifySQLiteError("PutRsvp", entry.ID, err)
	}

	return nil
}

// ListRsvps implements RsvpStore.ListRsvps
func (s *SQLiteStore) ListRsvps(ctx context.Context, eventID string) ([]*models.RsvpEntry, error) {
	query := `
		SELECT event_id, visitor_id, id, name, color, timestamp
		FROM rsvps
		WHERE event_id = ?
		ORDER BY visitor_id
	`

	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, classifySQLiteError("ListRsvps", eventID, err)
	}
	defer rows.Close()

	entries := []*models.RsvpEntry{}
	for rows.Next() {
		entry := &models.RsvpEntry{}
		if err := rows.Scan(&entry.EventID, &entry.VisitorID, &entry.ID, &entry.Name, &entry.Color, &entry.Timestamp); err != nil {
			return nil, NewStorageError("ListRsvps", eventID, err, false)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, classifySQLiteError("ListRsvps", eventID, err)
	}

	return entries, nil
}

// DeleteRsvp implements RsvpStore.DeleteRsvp
func (s *SQLiteStore) DeleteRsvp(ctx context.Context, eventID, visitorID string) error {
	query := `DELETE FROM rsvps WHERE event_id = ? AND visitor_id = ?`

	if _, err := s.db.ExecContext(ctx, query, eventID, visitorID); err != nil {
		return classifySQLiteError("DeleteRsvp", models.RsvpID(eventID, visitorID), err)
	}

	return nil
}

// Close implements Store.Close
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// classifySQLiteError marks lock contention as retryable
func classifySQLiteError(op, key string, err error) *StorageError {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked {
			return NewStorageError(op, key, fmt.Errorf("%w: %v", ErrStorageUnavailable, err), true)
		}
	}
	return NewStorageError(op, key, err, false)
}

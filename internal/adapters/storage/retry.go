package storage

import (
	"context"
	"math"
	"math/rand"
	"time"

	"freshsilver-api/internal/models"
)

// RetryConfig configures retry behavior for storage operations
type RetryConfig struct {
	MaxAttempts   int           `json:"max_attempts" yaml:"max_attempts"`
	InitialDelay  time.Duration `json:"initial_delay" yaml:"initial_delay"`
	MaxDelay      time.Duration `json:"max_delay" yaml:"max_delay"`
	BackoffFactor float64       `json:"backoff_factor" yaml:"backoff_factor"`
	JitterEnabled bool          `json:"jitter_enabled" yaml:"jitter_enabled"`
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  50 * time.Millisecond,
		MaxDelay:      time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}
}

// RetryableOperation represents an operation that can be retried
type RetryableOperation func(ctx context.Context) error

// WithRetry executes an operation, retrying only errors reported by IsRetryable
func WithRetry(ctx context.Context, config *RetryConfig, op RetryableOperation) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := op(ctx)
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt >= config.MaxAttempts || !IsRetryable(err) {
			break
		}

		delay := config.calculateDelay(attempt)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

// calculateDelay calculates the delay before the next retry attempt
func (c *RetryConfig) calculateDelay(attempt int) time.Duration {
	// delay = initial_delay * (backoff_factor ^ (attempt - 1))
	delay := float64(c.InitialDelay) * math.Pow(c.BackoffFactor, float64(attempt-1))

	if c.MaxDelay > 0 && delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}

	if c.JitterEnabled {
		jitter := rand.Float64() * 0.1 * delay // Up to 10% jitter
		delay += jitter
	}

	return time.Duration(delay)
}

// RetryableStore wraps a Store implementation with retry logic
type RetryableStore struct {
	store  Store
	config *RetryConfig
}

// NewRetryableStore creates a new RetryableStore
func NewRetryableStore(store Store, config *RetryConfig) *RetryableStore {
	if config == nil {
		config = DefaultRetryConfig()
	}

	return &RetryableStore{
		store:  store,
		config: config,
	}
}

// PutMessage implements MessageStore.PutMessage with retry logic
func (r *RetryableStore) PutMessage(ctx context.Context, msg *models.ChatMessage) error {
	return WithRetry(ctx, r.config, func(ctx context.Context) error {
		return r.store.PutMessage(ctx, msg)
	})
}

// RecentMessages implements MessageStore.RecentMessages with retry logic
func (r *RetryableStore) RecentMessages(ctx context.Context, limit int) ([]*models.ChatMessage, error) {
	var result []*models.ChatMessage
	err := WithRetry(ctx, r.config, func(ctx context.Context) error {
		messages, err := r.store.RecentMessages(ctx, limit)
		if err != nil {
			return err
		}
		result = messages
		return nil
	})
	return result, err
}

// PutRsvp implements RsvpStore.PutRsvp with retry logic
func (r *RetryableStore) PutRsvp(ctx context.Context, entry *models.RsvpEntry) error {
	return WithRetry(ctx, r.config, func(ctx context.Context) error {
		return r.store.PutRsvp(ctx, entry)
	})
}

// ListRsvps implements RsvpStore.ListRsvps with retry logic
func (r *RetryableStore) ListRsvps(ctx context.Context, eventID string) ([]*models.RsvpEntry, error) {
	var result []*models.RsvpEntry
	err := WithRetry(ctx, r.config, func(ctx context.Context) error {
		entries, err := r.store.ListRsvps(ctx, eventID)
		if err != nil {
			return err
		}
		result = entries
		return nil
	})
	return result, err
}

// DeleteRsvp implements RsvpStore.DeleteRsvp with retry logic
func (r *RetryableStore) DeleteRsvp(ctx context.Context, eventID, visitorID string) error {
	return WithRetry(ctx, r.config, func(ctx context.Context) error {
		return r.store.DeleteRsvp(ctx, eventID, visitorID)
	})
}

// Close implements Store.Close
func (r *RetryableStore) Close() error {
	return r.store.Close()
}

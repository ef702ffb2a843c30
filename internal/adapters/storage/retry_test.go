package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"freshsilver-api/internal/models"
)

// flakyStore fails the first failures calls with a retryable error
type flakyStore struct {
	*MemoryStore
	failures int
	attempts int
}

func (f *flakyStore) fail(op string) error {
	f.attempts++
	if f.attempts <= f.failures {
		return NewStorageError(op, "", ErrThrottled, true)
	}
	return nil
}

func (f *flakyStore) PutMessage(ctx context.Context, msg *models.ChatMessage) error {
	if err := f.fail("PutMessage"); err != nil {
		return err
	}
	return f.MemoryStore.PutMessage(ctx, msg)
}

func (f *flakyStore) ListRsvps(ctx context.Context, eventID string) ([]*models.RsvpEntry, error) {
	if err := f.fail("ListRsvps"); err != nil {
		return nil, err
	}
	return f.MemoryStore.ListRsvps(ctx, eventID)
}

func TestRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxAttempts != 3 {
		t.Errorf("Expected MaxAttempts=3, got %d", config.MaxAttempts)
	}

	if config.InitialDelay != 50*time.Millisecond {
		t.Errorf("Expected InitialDelay=50ms, got %v", config.InitialDelay)
	}

	if config.BackoffFactor != 2.0 {
		t.Errorf("Expected BackoffFactor=2.0, got %f", config.BackoffFactor)
	}
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()
	config := &RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		BackoffFactor: 2.0,
	}

	t.Run("SuccessOnFirstAttempt", func(t *testing.T) {
		attempts := 0
		err := WithRetry(ctx, config, func(ctx context.Context) error {
			attempts++
			return nil
		})
		if err != nil {
			t.Fatalf("WithRetry failed: %v", err)
		}
		if attempts != 1 {
			t.Errorf("Expected 1 attempt, got %d", attempts)
		}
	})

	t.Run("SuccessOnSecondAttempt", func(t *testing.T) {
		attempts := 0
		err := WithRetry(ctx, config, func(ctx context.Context) error {
			attempts++
			if attempts == 1 {
				return NewStorageError("test", "key", ErrThrottled, true)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("WithRetry failed: %v", err)
		}
		if attempts != 2 {
			t.Errorf("Expected 2 attempts, got %d", attempts)
		}
	})

	t.Run("FailAfterMaxAttempts", func(t *testing.T) {
		attempts := 0
		err := WithRetry(ctx, config, func(ctx context.Context) error {
			attempts++
			return NewStorageError("test", "key", ErrStorageUnavailable, true)
		})
		if err == nil {
			t.Fatal("WithRetry should have failed")
		}
		if attempts != 3 {
			t.Errorf("Expected 3 attempts, got %d", attempts)
		}
		if !IsRetryable(err) {
			t.Error("Error should be retryable")
		}
	})

	t.Run("NonRetryableError", func(t *testing.T) {
		attempts := 0
		err := WithRetry(ctx, config, func(ctx context.Context) error {
			attempts++
			return NewStorageError("test", "key", ErrInvalidKey, false)
		})
		if err == nil {
			t.Fatal("WithRetry should have failed")
		}
		if attempts != 1 {
			t.Errorf("Expected 1 attempt, got %d", attempts)
		}
		if IsRetryable(err) {
			t.Error("Error should not be retryable")
		}
	})

	t.Run("CancelledContext", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := WithRetry(cancelled, config, func(ctx context.Context) error {
			t.Error("Operation should not run on a cancelled context")
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})
}

func TestRetryableStore(t *testing.T) {
	ctx := context.Background()
	config := &RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		BackoffFactor: 2.0,
	}

	t.Run("RetriesTransientWrite", func(t *testing.T) {
		flaky := &flakyStore{MemoryStore: NewMemoryStore(), failures: 2}
		store := NewRetryableStore(flaky, config)
		defer store.Close()

		msg := &models.ChatMessage{ID: "1-aaaa", Text: "hi"}
		if err := store.PutMessage(ctx, msg); err != nil {
			t.Fatalf("PutMessage failed: %v", err)
		}
		if flaky.attempts != 3 {
			t.Errorf("Expected 3 attempts, got %d", flaky.attempts)
		}
		if flaky.MessageCount() != 1 {
			t.Errorf("Expected 1 stored message, got %d", flaky.MessageCount())
		}
	})

	t.Run("GivesUpAfterMaxAttempts", func(t *testing.T) {
		flaky := &flakyStore{MemoryStore: NewMemoryStore(), failures: 5}
		store := NewRetryableStore(flaky, config)

		_, err := store.ListRsvps(ctx, "hike")
		if !errors.Is(err, ErrThrottled) {
			t.Errorf("Expected ErrThrottled, got %v", err)
		}
		if flaky.attempts != 3 {
			t.Errorf("Expected 3 attempts, got %d", flaky.attempts)
		}
	})

	t.Run("PassesThrough", func(t *testing.T) {
		memory := NewMemoryStore()
		store := NewRetryableStore(memory, config)

		entry := models.NewRsvpEntry("hike", "v1", "Bo", "#000", time.Now())
		if err := store.PutRsvp(ctx, entry); err != nil {
			t.Fatalf("PutRsvp failed: %v", err)
		}

		entries, err := store.ListRsvps(ctx, "hike")
		if err != nil {
			t.Fatalf("ListRsvps failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("Expected 1 entry, got %d", len(entries))
		}

		if err := store.DeleteRsvp(ctx, "hike", "v1"); err != nil {
			t.Fatalf("DeleteRsvp failed: %v", err)
		}
		if memory.RsvpCount("hike") != 0 {
			t.Error("Entry should be deleted in underlying store")
		}

		messages, err := store.RecentMessages(ctx, 10)
		if err != nil {
			t.Fatalf("RecentMessages failed: %v", err)
		}
		if len(messages) != 0 {
			t.Errorf("Expected no messages, got %d", len(messages))
		}
	})
}

func TestCalculateDelay(t *testing.T) {
	config := &RetryConfig{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: false,
	}

	expected := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}
	for i, want := range expected {
		if got := config.calculateDelay(i + 1); got != want {
			t.Errorf("Delay%d mismatch: got %v, want %v", i+1, got, want)
		}
	}

	config.MaxDelay = 300 * time.Millisecond
	if delay := config.calculateDelay(4); delay > config.MaxDelay {
		t.Errorf("Delay should be capped at MaxDelay: got %v, max %v", delay, config.MaxDelay)
	}
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"freshsilver-api/internal/models"
)

func TestMemoryStore_RecentMessages(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.UnixMilli(1700000000000)

	for i := 0; i < 5; i++ {
		createdAt := base.Add(time.Duration(i) * time.Second)
		msg := models.NewChatMessage(models.NewChatMessageID(createdAt, "0000000"+fmt.Sprint(i)), fmt.Sprintf("msg %d", i), "Ana", "#fff", createdAt, 24*time.Hour)
		if err := store.PutMessage(ctx, msg); err != nil {
			t.Fatalf("PutMessage failed: %v", err)
		}
	}
	store.SetClock(func() time.Time { return base })

	t.Run("NewestFirst", func(t *testing.T) {
		messages, err := store.RecentMessages(ctx, 0)
		if err != nil {
			t.Fatalf("RecentMessages failed: %v", err)
		}
		if len(messages) != 5 {
			t.Fatalf("Expected 5 messages, got %d", len(messages))
		}
		if messages[0].Text != "msg 4" || messages[4].Text != "msg 0" {
			t.Errorf("Expected newest first, got %q ... %q", messages[0].Text, messages[4].Text)
		}
	})

	t.Run("Limit", func(t *testing.T) {
		messages, err := store.RecentMessages(ctx, 2)
		if err != nil {
			t.Fatalf("RecentMessages failed: %v", err)
		}
		if len(messages) != 2 {
			t.Fatalf("Expected 2 messages, got %d", len(messages))
		}
		if messages[1].Text != "msg 3" {
			t.Errorf("Expected second newest message, got %q", messages[1].Text)
		}
	})

	t.Run("ExpiredHidden", func(t *testing.T) {
		store.SetClock(func() time.Time { return base.Add(48 * time.Hour) })
		defer store.SetClock(func() time.Time { return base })

		messages, err := store.RecentMessages(ctx, 0)
		if err != nil {
			t.Fatalf("RecentMessages failed: %v", err)
		}
		if len(messages) != 0 {
			t.Errorf("Expected expired messages to be hidden, got %d", len(messages))
		}
		if store.MessageCount() != 5 {
			t.Errorf("Expected expired messages to stay stored, got %d", store.MessageCount())
		}
	})
}

func TestMemoryStore_PutMessageRejectsMissingID(t *testing.T) {
	store := NewMemoryStore()
	err := store.PutMessage(context.Background(), &models.ChatMessage{Text: "x"})
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Expected ErrInvalidKey, got %v", err)
	}
}

func TestMemoryStore_Rsvps(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()

	for _, visitor := range []string{"v2", "v1"} {
		if err := store.PutRsvp(ctx, models.NewRsvpEntry("hike", visitor, "Name "+visitor, "#000", now)); err != nil {
			t.Fatalf("PutRsvp failed: %v", err)
		}
	}

	t.Run("OrderedByVisitor", func(t *testing.T) {
		entries, err := store.ListRsvps(ctx, "hike")
		if err != nil {
			t.Fatalf("ListRsvps failed: %v", err)
		}
		if len(entries) != 2 || entries[0].VisitorID != "v1" {
			t.Fatalf("Expected v1 first of 2 entries, got %+v", entries)
		}
	})

	t.Run("UpsertReplaces", func(t *testing.T) {
		if err := store.PutRsvp(ctx, models.NewRsvpEntry("hike", "v1", "Renamed", "#111", now)); err != nil {
			t.Fatalf("PutRsvp failed: %v", err)
		}
		entries, _ := store.ListRsvps(ctx, "hike")
		if len(entries) != 2 {
			t.Fatalf("Expected 2 entries after upsert, got %d", len(entries))
		}
		if entries[0].Name != "Renamed" {
			t.Errorf("Expected replaced name, got %q", entries[0].Name)
		}
	})

	t.Run("OtherEventEmpty", func(t *testing.T) {
		entries, err := store.ListRsvps(ctx, "party")
		if err != nil {
			t.Fatalf("ListRsvps failed: %v", err)
		}
		if entries == nil || len(entries) != 0 {
			t.Errorf("Expected empty non-nil list, got %v", entries)
		}
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := store.DeleteRsvp(ctx, "hike", "v1"); err != nil {
				t.Fatalf("DeleteRsvp attempt %d failed: %v", i+1, err)
			}
		}
		if store.RsvpCount("hike") != 1 {
			t.Errorf("Expected 1 remaining entry, got %d", store.RsvpCount("hike"))
		}
		if err := store.DeleteRsvp(ctx, "missing", "nobody"); err != nil {
			t.Errorf("Expected deleting an absent entry to succeed, got %v", err)
		}
	})
}

func TestMemoryStore_FailWith(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	boom := errors.New("table unavailable")
	store.FailWith(boom)

	if err := store.PutMessage(ctx, &models.ChatMessage{ID: "1-a"}); !errors.Is(err, boom) {
		t.Errorf("Expected PutMessage to fail with injected error, got %v", err)
	}
	if _, err := store.ListRsvps(ctx, "hike"); !errors.Is(err, boom) {
		t.Errorf("Expected ListRsvps to fail with injected error, got %v", err)
	}
	if store.Calls() != 2 {
		t.Errorf("Expected 2 calls recorded, got %d", store.Calls())
	}

	store.Reset()
	if err := store.PutMessage(ctx, &models.ChatMessage{ID: "1-a"}); err != nil {
		t.Errorf("Expected Reset to clear the failure, got %v", err)
	}
}

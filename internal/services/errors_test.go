package services

import (
	"errors"
	"fmt"
	"testing"

	"freshsilver-api/internal/adapters/storage"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"Nil", nil, KindUnknown},
		{"BadRequest", BadRequest("nope"), KindBadRequest},
		{"NotFound", NotFound(MsgNotFound), KindNotFound},
		{"Storage", StorageFailure(errors.New("boom")), KindStorageFailure},
		{"Wrapped", fmt.Errorf("context: %w", BadRequest("nope")), KindBadRequest},
		{"Untagged", errors.New("plain"), KindStorageFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStorageFailureMessage(t *testing.T) {
	cause := errors.New("ResourceNotFoundException: table missing")
	err := StorageFailure(storage.NewStorageError("PutMessage", "1-a", cause, false))

	if err.Error() != cause.Error() {
		t.Errorf("Expected raw store text %q, got %q", cause.Error(), err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected StorageFailure to wrap the cause")
	}
}

func TestNewServiceContainer(t *testing.T) {
	if _, err := NewServiceContainer(nil, nil); err == nil {
		t.Error("Expected error for nil store")
	}

	container, err := NewServiceContainer(storage.NewMemoryStore(), nil)
	if err != nil {
		t.Fatalf("NewServiceContainer failed: %v", err)
	}
	if container.MessageService == nil || container.RsvpService == nil {
		t.Error("Expected both services to be created")
	}
}

func TestServiceConfigDefaults(t *testing.T) {
	cfg := (&ServiceConfig{HistoryLimit: 10}).withDefaults()
	if cfg.HistoryLimit != 10 {
		t.Errorf("Expected explicit limit to survive, got %d", cfg.HistoryLimit)
	}
	if cfg.MessageTTL != defaultMessageTTL {
		t.Errorf("Expected default TTL, got %v", cfg.MessageTTL)
	}
	if cfg.DefaultColor == "" {
		t.Error("Expected default color")
	}
}

package storage

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestFactory_Create(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	t.Run("Memory", func(t *testing.T) {
		store, err := NewFactory(nil, logger).Create(&StorageConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, ok := store.(*MemoryStore); !ok {
			t.Errorf("Expected *MemoryStore, got %T", store)
		}
	})

	t.Run("WrapsWithRetry", func(t *testing.T) {
		store, err := NewFactory(DefaultRetryConfig(), logger).Create(&StorageConfig{Type: "MEMORY"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, ok := store.(*RetryableStore); !ok {
			t.Errorf("Expected *RetryableStore, got %T", store)
		}
	})

	t.Run("SQLite", func(t *testing.T) {
		store, err := NewFactory(nil, logger).Create(&StorageConfig{
			Type:       "sqlite",
			SQLitePath: filepath.Join(t.TempDir(), "factory.db"),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		defer store.Close()
		if _, ok := store.(*SQLiteStore); !ok {
			t.Errorf("Expected *SQLiteStore, got %T", store)
		}
	})

	t.Run("SQLiteRequiresPath", func(t *testing.T) {
		if _, err := NewFactory(nil, logger).Create(&StorageConfig{Type: "sqlite"}); err == nil {
			t.Error("Expected error for missing sqlite path")
		}
	})

	t.Run("DynamoDBRequiresTables", func(t *testing.T) {
		_, err := NewFactory(nil, logger).Create(&StorageConfig{Type: "dynamodb", Region: "us-east-1"})
		if err == nil {
			t.Error("Expected error for missing table names")
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		if _, err := NewFactory(nil, logger).Create(&StorageConfig{Type: "redis"}); err == nil {
			t.Error("Expected error for unsupported type")
		}
		if _, err := NewFactory(nil, logger).Create(nil); err == nil {
			t.Error("Expected error for nil config")
		}
	})
}

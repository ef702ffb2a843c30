package server

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"freshsilver-api/internal/config"
	"freshsilver-api/pkg/lambda"
)

func testConfig(storageType string) *config.Config {
	return &config.Config{
		Environment: "test",
		Port:        "8081",
		Stage:       "prod",
		Storage: config.StorageConfig{
			Type:             storageType,
			Region:           "us-east-1",
			MaxRetryAttempts: 1,
		},
		Chat: config.ChatConfig{
			MessageTTLDays:      30,
			MessageHistoryLimit: 50,
			DefaultColor:        "#0EA5E9",
		},
		Log: config.LogConfig{Level: "error", Format: "json"},
	}
}

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	container, err := NewContainer(testConfig(config.StorageMemory))
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	defer container.Close()

	if container.MessageService == nil {
		t.Error("MessageService is nil")
	}
	if container.RsvpService == nil {
		t.Error("RsvpService is nil")
	}
	if container.Dispatcher == nil {
		t.Fatal("Dispatcher is nil")
	}

	resp := container.Dispatcher.Handle(context.Background(), &lambda.Request{
		Method: "POST",
		Path:   "/prod/messages",
		Body:   []byte(`{"text":"hello"}`),
	})
	if resp.StatusCode != 201 {
		t.Errorf("Expected 201, got %d: %s", resp.StatusCode, resp.Body)
	}
}

func TestNewContainerSQLite(t *testing.T) {
	cfg := testConfig(config.StorageSQLite)
	cfg.Database.ConnectionString = filepath.Join(t.TempDir(), "container.db")
	cfg.Storage.MaxRetryAttempts = 3

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	resp := container.Dispatcher.Handle(context.Background(), &lambda.Request{Method: "GET", Path: "/messages"})
	if resp.StatusCode != 200 {
		t.Errorf("Expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}

	if err := container.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := container.Close(); err != nil {
		t.Errorf("Second Close failed: %v", err)
	}
}

func TestNewContainerUnknownStorage(t *testing.T) {
	if _, err := NewContainer(testConfig("cassandra")); err == nil {
		t.Error("Expected error for unknown storage type")
	}
	if _, err := NewContainerWithStore(nil, nil, nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestStorageConfig(t *testing.T) {
	cfg := testConfig(config.StorageDynamoDB)
	cfg.Storage.MessagesTable = "messages"
	cfg.Storage.RsvpTable = "rsvps"
	cfg.Database.ConnectionString = "/tmp/x.db"

	sc := StorageConfig(cfg)
	if sc.Type != "dynamodb" || sc.MessagesTable != "messages" || sc.RsvpTable != "rsvps" {
		t.Errorf("Unexpected storage config: %+v", sc)
	}
	if sc.SQLitePath != "/tmp/x.db" {
		t.Errorf("Expected sqlite path to be carried, got %q", sc.SQLitePath)
	}
}

func TestConnectionManager(t *testing.T) {
	loads := 0
	cm := NewConnectionManager(func() (*config.Config, error) {
		loads++
		return testConfig(config.StorageMemory), nil
	})

	if cm.IsHealthy() {
		t.Error("Expected uninitialized manager to be unhealthy")
	}

	first, err := cm.GetContainer(context.Background())
	if err != nil {
		t.Fatalf("GetContainer failed: %v", err)
	}
	second, err := cm.GetContainer(context.Background())
	if err != nil {
		t.Fatalf("GetContainer failed: %v", err)
	}

	if first != second {
		t.Error("Expected the container to be reused")
	}
	if loads != 1 {
		t.Errorf("Expected config to load once, got %d", loads)
	}
	if !cm.IsHealthy() {
		t.Error("Expected initialized manager to be healthy")
	}

	if err := cm.Cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if cm.IsHealthy() {
		t.Error("Expected manager to be unhealthy after cleanup")
	}

	third, err := cm.GetContainer(context.Background())
	if err != nil {
		t.Fatalf("GetContainer after cleanup failed: %v", err)
	}
	if third == first {
		t.Error("Expected a fresh container after cleanup")
	}
}

func TestConnectionManagerConfigError(t *testing.T) {
	cm := NewConnectionManager(func() (*config.Config, error) {
		return nil, errors.New("MESSAGES_TABLE is required")
	})

	if _, err := cm.GetContainer(context.Background()); err == nil {
		t.Error("Expected configuration error")
	}
}

func TestConnectionManagerInitialize(t *testing.T) {
	cm := NewConnectionManager(func() (*config.Config, error) {
		return nil, errors.New("config should not be loaded after Initialize")
	})

	if err := cm.Initialize(testConfig(config.StorageMemory)); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer cm.Cleanup()

	container, err := cm.GetContainer(context.Background())
	if err != nil {
		t.Fatalf("GetContainer failed: %v", err)
	}

	// A second Initialize keeps the existing container
	if err := cm.Initialize(testConfig("cassandra")); err != nil {
		t.Fatalf("Second Initialize failed: %v", err)
	}
	again, err := cm.GetContainer(context.Background())
	if err != nil {
		t.Fatalf("GetContainer failed: %v", err)
	}
	if again != container {
		t.Error("Expected Initialize to keep the existing container")
	}
}

func TestConnectionManagerInitializeFailure(t *testing.T) {
	cm := NewConnectionManager(func() (*config.Config, error) {
		return testConfig(config.StorageMemory), nil
	})

	if err := cm.Initialize(testConfig("cassandra")); err == nil {
		t.Fatal("Expected Initialize to fail for unknown storage")
	}
	if cm.IsHealthy() {
		t.Error("Expected manager to be unhealthy after a failed Initialize")
	}

	// The next invocation loads configuration and recovers
	if _, err := cm.GetContainer(context.Background()); err != nil {
		t.Fatalf("GetContainer failed: %v", err)
	}
}

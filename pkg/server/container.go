package server

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"freshsilver-api/internal/adapters/storage"
	"freshsilver-api/internal/config"
	"freshsilver-api/internal/handlers"
	"freshsilver-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *logrus.Logger
	MessageService services.MessageService
	RsvpService    services.RsvpService
	Dispatcher     *handlers.Dispatcher

	store storage.Store
}

// NewContainer creates a new dependency injection container, opening the
// store selected by cfg
func NewContainer(cfg *config.Config) (*Container, error) {
	logger := config.NewLogger(cfg.Log)

	retryConfig := storage.DefaultRetryConfig()
	retryConfig.MaxAttempts = cfg.Storage.MaxRetryAttempts

	store, err := storage.NewFactory(retryConfig, logger).Create(StorageConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	container, err := NewContainerWithStore(cfg, store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return container, nil
}

// NewContainerWithStore wires services and the dispatcher on an existing store
func NewContainerWithStore(cfg *config.Config, store storage.Store, logger *logrus.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = config.NewLogger(cfg.Log)
	}

	serviceContainer, err := services.NewServiceContainer(store, &services.ServiceConfig{
		MessageTTL:   time.Duration(cfg.Chat.MessageTTLDays) * 24 * time.Hour,
		HistoryLimit: cfg.Chat.MessageHistoryLimit,
		DefaultColor: cfg.Chat.DefaultColor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create services: %w", err)
	}

	dispatcher := handlers.NewDispatcher(
		serviceContainer.MessageService,
		serviceContainer.RsvpService,
		&handlers.DispatcherConfig{Stage: cfg.Stage},
		logger,
	)

	logger.WithFields(logrus.Fields{
		"storage_type": cfg.Storage.Type,
		"stage":        cfg.Stage,
	}).Info("Container initialized")

	return &Container{
		Config:         cfg,
		Logger:         logger,
		MessageService: serviceContainer.MessageService,
		RsvpService:    serviceContainer.RsvpService,
		Dispatcher:     dispatcher,
		store:          store,
	}, nil
}

// StorageConfig translates application configuration into the storage factory's
func StorageConfig(cfg *config.Config) *storage.StorageConfig {
	return &storage.StorageConfig{
		Type:          cfg.Storage.Type,
		MessagesTable: cfg.Storage.MessagesTable,
		RsvpTable:     cfg.Storage.RsvpTable,
		Region:        cfg.Storage.Region,
		Endpoint:      cfg.Storage.Endpoint,
		SQLitePath:    cfg.Database.ConnectionString,
		MaxOpenConns:  cfg.Database.MaxOpenConns,
	}
}

// Close releases the store
func (c *Container) Close() error {
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		c.store = nil
	}
	return nil
}

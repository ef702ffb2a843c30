package services

import (
	"fmt"
	"time"

	"freshsilver-api/internal/adapters/storage"
	"freshsilver-api/internal/models"
)

const defaultMessageTTL = 30 * 24 * time.Hour

// ServiceContainer holds all service instances
type ServiceContainer struct {
	MessageService MessageService
	RsvpService    RsvpService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	MessageTTL   time.Duration
	HistoryLimit int
	DefaultColor string
}

// DefaultServiceConfig returns the production defaults
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MessageTTL:   defaultMessageTTL,
		HistoryLimit: 50,
		DefaultColor: models.DefaultColor,
	}
}

func (c *ServiceConfig) withDefaults() ServiceConfig {
	defaults := DefaultServiceConfig()
	if c == nil {
		return *defaults
	}

	cfg := *c
	if cfg.MessageTTL <= 0 {
		cfg.MessageTTL = defaults.MessageTTL
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaults.HistoryLimit
	}
	if cfg.DefaultColor == "" {
		cfg.DefaultColor = defaults.DefaultColor
	}
	return cfg
}

// NewServiceContainer creates a new service container on top of store
func NewServiceContainer(store storage.Store, config *ServiceConfig) (*ServiceContainer, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}

	return &ServiceContainer{
		MessageService: NewMessageService(store, config),
		RsvpService:    NewRsvpService(store, config),
	}, nil
}

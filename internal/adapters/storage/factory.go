package storage

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"freshsilver-api/internal/database"
)

// StorageType represents the type of storage implementation
type StorageType string

const (
	StorageTypeDynamoDB StorageType = "dynamodb"
	StorageTypeSQLite   StorageType = "sqlite"
	StorageTypeMemory   StorageType = "memory"
)

// Factory creates Store instances based on configuration
type Factory struct {
	retryConfig *RetryConfig
	logger      *logrus.Logger
}

// NewFactory creates a new storage factory
func NewFactory(retryConfig *RetryConfig, logger *logrus.Logger) *Factory {
	if logger == nil {
		logger = logrus.New()
	}
	return &Factory{
		retryConfig: retryConfig,
		logger:      logger,
	}
}

// Create creates a Store instance based on the provided configuration
func (f *Factory) Create(config *StorageConfig) (Store, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config is required")
	}

	storageType := StorageType(strings.ToLower(config.Type))

	var store Store
	var err error

	switch storageType {
	case StorageTypeDynamoDB:
		store, err = f.createDynamoDBStore(config)
	case StorageTypeSQLite:
		store, err = f.createSQLiteStore(config)
	case StorageTypeMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", config.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s storage: %w", config.Type, err)
	}

	if f.retryConfig != nil && f.retryConfig.MaxAttempts > 1 {
		store = NewRetryableStore(store, f.retryConfig)
	}

	f.logger.WithField("storage_type", storageType).Debug("Storage created")
	return store, nil
}

// createDynamoDBStore creates the production DynamoDB store
func (f *Factory) createDynamoDBStore(config *StorageConfig) (Store, error) {
	client, err := NewDynamoDBClient(config.Region, config.Endpoint)
	if err != nil {
		return nil, err
	}
	return NewDynamoDBStore(client, config.MessagesTable, config.RsvpTable)
}

// createSQLiteStore opens and migrates the local database
func (f *Factory) createSQLiteStore(config *StorageConfig) (Store, error) {
	if config.SQLitePath == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	db, err := database.InitializeDatabase(&database.ConnectionConfig{
		DatabasePath: config.SQLitePath,
		MaxOpenConns: config.MaxOpenConns,
		Logger:       f.logger,
	})
	if err != nil {
		return nil, err
	}

	return NewSQLiteStore(db, f.logger), nil
}

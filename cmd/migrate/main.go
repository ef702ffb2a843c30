package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"freshsilver-api/internal/config"
	"freshsilver-api/internal/database"
)

func main() {
	var (
		dbPath  = flag.String("db", config.GetEnv("DB_CONNECTION_STRING", "./data/freshsilver.db"), "Database file path")
		action  = flag.String("action", "up", "Migration action: up, down, status, validate, prune")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absDBPath, err := filepath.Abs(*dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute database path")
	}

	logger.WithFields(logrus.Fields{
		"db_path": absDBPath,
		"action":  *action,
	}).Info("Starting migration tool")

	connConfig := database.DefaultConnectionConfig()
	connConfig.DatabasePath = absDBPath
	connConfig.Logger = logger

	cm := database.NewConnectionManager(connConfig)
	if err := cm.Connect(); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer cm.Close()

	mm := cm.GetMigrationManager()

	switch *action {
	case "up":
		err = mm.RunMigrations()
	case "down":
		err = mm.RollbackMigration()
	case "status":
		err = showStatus(mm)
	case "validate":
		err = validateSchema(mm)
	case "prune":
		err = pruneMessages(mm)
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: up, down, status, validate, prune")
	}
	if err != nil {
		logger.WithError(err).WithField("action", *action).Fatal("Migration tool failed")
	}

	logger.Info("Migration tool completed successfully")
}

func showStatus(mm *database.MigrationManager) error {
	status, err := mm.GetMigrationStatus()
	if err != nil {
		return err
	}
	tables, err := mm.DescribeTables()
	if err != nil {
		return err
	}

	fmt.Printf("Schema version %d (applied: %t, dirty: %t)\n", status.Version, status.Applied, status.Dirty)
	for _, table := range tables {
		if !table.Exists {
			fmt.Printf("  %-10s missing\n", table.Name)
			continue
		}
		fmt.Printf("  %-10s %d rows\n", table.Name, table.Rows)
	}
	return nil
}

func validateSchema(mm *database.MigrationManager) error {
	if err := mm.ValidateSchema(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	fmt.Printf("Schema has all %d expected tables\n", len(database.ExpectedTables))
	return nil
}

// pruneMessages removes messages past their ttl, which the local store keeps
// on disk after hiding them
func pruneMessages(mm *database.MigrationManager) error {
	pruned, err := mm.PruneExpiredMessages(time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Pruned %d expired messages\n", pruned)
	return nil
}

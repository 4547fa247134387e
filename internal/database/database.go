package database

import (
	"fmt"
	"log"
	"time"

	"github.com/Conceptual-Machines/magda-charts/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// Connect opens the Postgres progression store
func Connect(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		// Lookups for unknown progressions are expected, not worth a log line
		Logger: logger.New(log.Default(), logger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("✅ Database connected")
	return db, nil
}

// Migrate creates or updates the tables the service needs
func Migrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.Progression{},
	}

	for _, table := range tables {
		if err := db.AutoMigrate(table); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", table, err)
		}
	}

	log.Println("✅ Database migration completed")
	return nil
}

package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDatabase opens the mock backend database. postgres:// URLs use the
// PostgreSQL driver, anything else is handed to SQLite.
func ConnectDatabase(databaseURL string) error {
	if databaseURL == "" {
		return fmt.Errorf("database URL is required")
	}

	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var err error
	if isPostgresURL(databaseURL) {
		DB, err = gorm.Open(postgres.Open(databaseURL), gormCfg)
	} else {
		DB, err = gorm.Open(sqlite.Open(databaseURL), gormCfg)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	zap.L().Info("Database connection established", zap.String("driver", DB.Dialector.Name()))
	return nil
}

func isPostgresURL(databaseURL string) bool {
	return strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://")
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}

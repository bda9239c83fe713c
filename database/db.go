package database

import (
	"fmt"
	"log/slog"

	"moviehub/internal/config"
	"moviehub/internal/http-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens the Postgres connection and migrates the schema.
// TranslateError is on so unique-index violations surface as
// gorm.ErrDuplicatedKey across drivers; the relation upsert depends on it.
func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("connected to the database")
	return db, nil
}

// Migrate creates/updates the schema for every model the service persists.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Movie{},
		&models.UserMovieRelation{},
	)
}

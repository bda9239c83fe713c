package service

import (
	"io"
	"log/slog"
	"testing"

	"moviehub/internal/http-api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Movie{},
		&models.UserMovieRelation{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedMovie(t *testing.T, db *gorm.DB, title, tagline string, year int) *models.Movie {
	t.Helper()
	movie := &models.Movie{Title: title, Tagline: tagline, Year: year}
	if err := db.Create(movie).Error; err != nil {
		t.Fatalf("seed movie %s: %v", title, err)
	}
	return movie
}

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

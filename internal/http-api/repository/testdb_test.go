package repository

import (
	"context"
	"testing"
	"time"

	"moviehub/internal/http-api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test its own in-memory database with the full
// schema. TranslateError matches the production config so duplicate-key
// handling behaves the same way.
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

// queryCounter counts executed statements so tests can pin down how many
// round-trips an operation costs.
type queryCounter struct {
	queries int
}

func (c *queryCounter) LogMode(logger.LogLevel) logger.Interface { return c }

func (c *queryCounter) Info(context.Context, string, ...interface{})  {}
func (c *queryCounter) Warn(context.Context, string, ...interface{})  {}
func (c *queryCounter) Error(context.Context, string, ...interface{}) {}

func (c *queryCounter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	c.queries++
}

func countQueries(db *gorm.DB, counter *queryCounter) *gorm.DB {
	return db.Session(&gorm.Session{Logger: counter})
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

func seedRelation(t *testing.T, db *gorm.DB, userID string, movieID int64, like bool, rate *int) {
	t.Helper()
	rel := &models.UserMovieRelation{UserID: userID, MovieID: movieID, Like: like, Rate: rate}
	if err := db.Create(rel).Error; err != nil {
		t.Fatalf("seed relation: %v", err)
	}
}

func intPtr(i int) *int { return &i }

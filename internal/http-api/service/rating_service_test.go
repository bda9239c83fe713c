package service

import (
	"context"
	"testing"

	"moviehub/internal/http-api/models"
	"moviehub/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingService_Recompute(t *testing.T) {
	db := openTestDB(t)
	movieRepo := repository.NewMovieRepo(db)
	relationRepo := repository.NewRelationRepository(db)
	svc := NewRatingService(relationRepo, movieRepo)

	movie := seedMovie(t, db, "Loki", "Glorious Purpose, King", 2021)

	for i, rate := range []int{5, 5, 4} {
		user := seedUser(t, db, []string{"user1", "user2", "user3"}[i])
		rel := &models.UserMovieRelation{UserID: user.ID, MovieID: movie.ID, Like: true, Rate: intPtr(rate)}
		require.NoError(t, db.Create(rel).Error)
	}

	require.NoError(t, svc.Recompute(context.Background(), movie.ID))

	stored, err := movieRepo.GetByID(context.Background(), movie.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Rating)
	assert.Equal(t, "4.67", *models.FormatRating(stored.Rating))
}

func TestRatingService_Recompute_NullRateExcluded(t *testing.T) {
	db := openTestDB(t)
	movieRepo := repository.NewMovieRepo(db)
	svc := NewRatingService(repository.NewRelationRepository(db), movieRepo)

	movie := seedMovie(t, db, "Hawkeye", "", 2021)
	u1 := seedUser(t, db, "user1")
	u2 := seedUser(t, db, "user2")
	u3 := seedUser(t, db, "user3")

	require.NoError(t, db.Create(&models.UserMovieRelation{UserID: u1.ID, MovieID: movie.ID, Rate: intPtr(3)}).Error)
	require.NoError(t, db.Create(&models.UserMovieRelation{UserID: u2.ID, MovieID: movie.ID, Rate: intPtr(4)}).Error)
	require.NoError(t, db.Create(&models.UserMovieRelation{UserID: u3.ID, MovieID: movie.ID, Like: true}).Error)

	require.NoError(t, svc.Recompute(context.Background(), movie.ID))

	stored, err := movieRepo.GetByID(context.Background(), movie.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Rating)
	assert.Equal(t, "3.50", *models.FormatRating(stored.Rating))
}

func TestRatingService_Recompute_NoRatesClearsRating(t *testing.T) {
	db := openTestDB(t)
	movieRepo := repository.NewMovieRepo(db)
	svc := NewRatingService(repository.NewRelationRepository(db), movieRepo)

	movie := seedMovie(t, db, "Loki", "", 2021)

	// stale persisted value from a previous life
	stale := 4.2
	require.NoError(t, movieRepo.UpdateRating(context.Background(), movie.ID, &stale))

	require.NoError(t, svc.Recompute(context.Background(), movie.ID))

	stored, err := movieRepo.GetByID(context.Background(), movie.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Rating)
}

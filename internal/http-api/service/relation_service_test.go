package service

import (
	"context"
	"errors"
	"testing"

	"moviehub/internal/http-api/dto"
	"moviehub/internal/http-api/models"
	"moviehub/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type relationFixture struct {
	db           *gorm.DB
	svc          RelationService
	movieRepo    *repository.MovieRepo
	relationRepo repository.RelationRepository
	user         *models.User
	movie        *models.Movie
}

func newRelationFixture(t *testing.T) *relationFixture {
	db := openTestDB(t)
	movieRepo := repository.NewMovieRepo(db)
	relationRepo := repository.NewRelationRepository(db)
	rating := NewRatingService(relationRepo, movieRepo)

	return &relationFixture{
		db:           db,
		svc:          NewRelationService(relationRepo, movieRepo, rating, nil, testLogger()),
		movieRepo:    movieRepo,
		relationRepo: relationRepo,
		user:         seedUser(t, db, "user1"),
		movie:        seedMovie(t, db, "Loki", "Glorious Purpose, King", 2021),
	}
}

func (f *relationFixture) relationCount(t *testing.T) int64 {
	t.Helper()
	count, err := f.relationRepo.CountForMovie(context.Background(), f.movie.ID)
	require.NoError(t, err)
	return count
}

func (f *relationFixture) storedRating(t *testing.T) *float64 {
	t.Helper()
	m, err := f.movieRepo.GetByID(context.Background(), f.movie.ID)
	require.NoError(t, err)
	return m.Rating
}

func TestRelationService_FirstPatchCreatesRow(t *testing.T) {
	f := newRelationFixture(t)

	rel, err := f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{Like: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, rel.Like)
	assert.False(t, rel.InBookmarks)
	assert.Nil(t, rel.Rate)
	assert.Equal(t, int64(1), f.relationCount(t))

	// second patch mutates the same row
	rel2, err := f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{InBookmarks: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, rel.ID, rel2.ID)
	assert.True(t, rel2.Like, "untouched fields survive a partial update")
	assert.True(t, rel2.InBookmarks)
	assert.Equal(t, int64(1), f.relationCount(t))
}

func TestRelationService_EmptyPatch(t *testing.T) {
	f := newRelationFixture(t)

	// a first empty patch still creates the row, with every field at default
	rel, err := f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{})
	require.NoError(t, err)
	assert.False(t, rel.Like)
	assert.Nil(t, rel.Rate)
	assert.Equal(t, int64(1), f.relationCount(t))

	_, err = f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{Like: boolPtr(true)})
	require.NoError(t, err)

	// an empty patch against an existing relation changes nothing
	rel, err = f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{})
	require.NoError(t, err)
	assert.True(t, rel.Like)
	assert.Equal(t, int64(1), f.relationCount(t))
}

func TestRelationService_RateTriggersRecompute(t *testing.T) {
	f := newRelationFixture(t)

	_, err := f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{Rate: intPtr(5)})
	require.NoError(t, err)

	rating := f.storedRating(t)
	require.NotNil(t, rating)
	assert.Equal(t, "5.00", *models.FormatRating(rating))

	// changing the rate recomputes
	_, err = f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{Rate: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, "3.00", *models.FormatRating(f.storedRating(t)))
}

func TestRelationService_LikeOnlyPatchSkipsRecompute(t *testing.T) {
	f := newRelationFixture(t)

	// establish a rated relation, then plant a sentinel rating value
	_, err := f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{Rate: intPtr(4)})
	require.NoError(t, err)

	sentinel := 1.23
	require.NoError(t, f.movieRepo.UpdateRating(context.Background(), f.movie.ID, &sentinel))

	// a like-only update must not touch the stored rating
	_, err = f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{Like: boolPtr(true)})
	require.NoError(t, err)

	rating := f.storedRating(t)
	require.NotNil(t, rating)
	assert.InDelta(t, 1.23, *rating, 0.001)
}

func TestRelationService_SameRateSkipsRecompute(t *testing.T) {
	f := newRelationFixture(t)

	_, err := f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{Rate: intPtr(4)})
	require.NoError(t, err)

	sentinel := 1.23
	require.NoError(t, f.movieRepo.UpdateRating(context.Background(), f.movie.ID, &sentinel))

	// re-sending the identical rate is not a rate change
	_, err = f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{Rate: intPtr(4)})
	require.NoError(t, err)

	rating := f.storedRating(t)
	require.NotNil(t, rating)
	assert.InDelta(t, 1.23, *rating, 0.001)
}

func TestRelationService_InvalidRateRejectedBeforePersistence(t *testing.T) {
	f := newRelationFixture(t)

	_, err := f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{Rate: intPtr(6), Like: boolPtr(true)})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "rate", verr.Field)

	// nothing was written, not even the relation row itself
	assert.Equal(t, int64(0), f.relationCount(t))
}

func TestRelationService_InvalidRateLeavesExistingStateUnchanged(t *testing.T) {
	f := newRelationFixture(t)

	_, err := f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{Rate: intPtr(4), Like: boolPtr(true)})
	require.NoError(t, err)

	_, err = f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{Rate: intPtr(0)})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	rel, err := f.relationRepo.GetByUserAndMovie(context.Background(), f.user.ID, f.movie.ID)
	require.NoError(t, err)
	assert.True(t, rel.Like)
	require.NotNil(t, rel.Rate)
	assert.Equal(t, 4, *rel.Rate)
	assert.Equal(t, "4.00", *models.FormatRating(f.storedRating(t)))
}

func TestRelationService_MovieNotFound(t *testing.T) {
	f := newRelationFixture(t)

	_, err := f.svc.ApplyPatch(context.Background(), f.user.ID, 9999,
		dto.RelationPatchDTO{Like: boolPtr(true)})
	assert.True(t, errors.Is(err, ErrMovieNotFound))
}

func TestRelationService_TwoUsersTwoRows(t *testing.T) {
	f := newRelationFixture(t)
	other := seedUser(t, f.db, "user2")

	_, err := f.svc.ApplyPatch(context.Background(), f.user.ID, f.movie.ID,
		dto.RelationPatchDTO{Rate: intPtr(5)})
	require.NoError(t, err)

	_, err = f.svc.ApplyPatch(context.Background(), other.ID, f.movie.ID,
		dto.RelationPatchDTO{Rate: intPtr(4)})
	require.NoError(t, err)

	assert.Equal(t, int64(2), f.relationCount(t))
	assert.Equal(t, "4.50", *models.FormatRating(f.storedRating(t)))
}

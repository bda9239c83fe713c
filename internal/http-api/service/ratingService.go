package service

import (
	"context"

	"moviehub/internal/http-api/models"
	"moviehub/internal/http-api/repository"
)

// RatingService recomputes the denormalized average rating stored on a
// movie from the relations that reference it. It is invoked explicitly by
// the relation write path after a rate-changing write, never from inside
// persistence hooks.
type RatingService interface {
	Recompute(ctx context.Context, movieID int64) error
}

type ratingService struct {
	relationRepo repository.RelationRepository
	movieRepo    *repository.MovieRepo
}

func NewRatingService(relationRepo repository.RelationRepository, movieRepo *repository.MovieRepo) RatingService {
	return &ratingService{
		relationRepo: relationRepo,
		movieRepo:    movieRepo,
	}
}

// Recompute reads the rate aggregates in one query and writes the rounded
// mean (or NULL when no rates exist) back onto the movie row. A missing
// movie here means the caller broke the contract; the error is propagated
// as-is and is not a user-facing condition.
func (s *ratingService) Recompute(ctx context.Context, movieID int64) error {
	sum, count, err := s.relationRepo.RatingStats(ctx, movieID)
	if err != nil {
		return err
	}
	return s.movieRepo.UpdateRating(ctx, movieID, models.AverageRating(sum, count))
}

package service

import (
	"context"
	"log/slog"

	"moviehub/internal/cache"
	"moviehub/internal/http-api/dto"
	"moviehub/internal/http-api/models"
	"moviehub/internal/http-api/repository"
)

type RelationService interface {
	ApplyPatch(ctx context.Context, userID string, movieID int64, patch dto.RelationPatchDTO) (*models.UserMovieRelation, error)
}

type relationService struct {
	relationRepo repository.RelationRepository
	movieRepo    *repository.MovieRepo
	rating       RatingService
	movieCache   *cache.MovieCache
	logger       *slog.Logger
}

func NewRelationService(
	relationRepo repository.RelationRepository,
	movieRepo *repository.MovieRepo,
	rating RatingService,
	movieCache *cache.MovieCache,
	logger *slog.Logger,
) RelationService {
	return &relationService{
		relationRepo: relationRepo,
		movieRepo:    movieRepo,
		rating:       rating,
		movieCache:   movieCache,
		logger:       logger,
	}
}

// ApplyPatch upserts the caller's relation with a movie and applies the
// patched fields. Validation runs before any store mutation: an out-of-range
// rate never creates the relation row, let alone changes it. Recomputation
// of the movie's rating happens only when the write created the relation or
// changed its rate; like/bookmark-only updates skip it.
func (s *relationService) ApplyPatch(ctx context.Context, userID string, movieID int64, patch dto.RelationPatchDTO) (*models.UserMovieRelation, error) {
	if patch.Rate != nil && (*patch.Rate < 1 || *patch.Rate > 5) {
		return nil, &ValidationError{Field: "rate", Message: "rate must be between 1 and 5"}
	}

	exists, err := s.movieRepo.Exists(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrMovieNotFound
	}

	rel, created, err := s.relationRepo.GetOrCreate(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}

	prevRate := rel.Rate

	// an empty patch still get-or-creates the row (that is the observable
	// contract of a first PATCH) but there is nothing to update
	if !patch.IsEmpty() {
		if patch.Like != nil {
			rel.Like = *patch.Like
		}
		if patch.InBookmarks != nil {
			rel.InBookmarks = *patch.InBookmarks
		}
		if patch.Rate != nil {
			rate := *patch.Rate
			rel.Rate = &rate
		}

		if err := s.relationRepo.Save(ctx, rel); err != nil {
			return nil, err
		}
	}

	if created || rateChanged(prevRate, rel.Rate) {
		// A failed recomputation leaves the previous rating in place; the
		// next rate write corrects it. Not an error for this request.
		if err := s.rating.Recompute(ctx, movieID); err != nil {
			s.logger.Error("rating recompute failed", "movie_id", movieID, "error", err)
		}
	}

	// any relation write can move the movie's aggregates (likes included),
	// so the cached view goes regardless of what changed
	if err := s.movieCache.Invalidate(ctx, movieID); err != nil {
		s.logger.Warn("movie cache invalidation failed", "movie_id", movieID, "error", err)
	}

	return rel, nil
}

func rateChanged(before, after *int) bool {
	if before == nil || after == nil {
		return before != after
	}
	return *before != *after
}

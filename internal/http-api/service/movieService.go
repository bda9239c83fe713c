package service

import (
	"context"
	"log/slog"
	"strings"

	"moviehub/internal/cache"
	"moviehub/internal/http-api/dto"
	"moviehub/internal/http-api/models"
	"moviehub/internal/http-api/repository"
)

type MovieService interface {
	List(ctx context.Context, filter repository.MovieFilter) ([]models.MovieView, error)
	GetView(ctx context.Context, id int64) (*models.MovieView, error)
	Create(ctx context.Context, m *models.Movie) error
	Update(ctx context.Context, id int64, patch dto.UpdateMovieDTO) (*models.Movie, error)
	Delete(ctx context.Context, id int64) error
}

type movieService struct {
	repo       *repository.MovieRepo
	movieCache *cache.MovieCache
	logger     *slog.Logger
}

func NewMovieService(repo *repository.MovieRepo, movieCache *cache.MovieCache, logger *slog.Logger) MovieService {
	return &movieService{repo: repo, movieCache: movieCache, logger: logger}
}

// List validates the filter and runs the grouped catalog query. Only the
// year field is a legal sort key; anything else is rejected rather than
// silently ignored.
func (s *movieService) List(ctx context.Context, filter repository.MovieFilter) ([]models.MovieView, error) {
	switch filter.Ordering {
	case "", "year", "-year":
	default:
		return nil, &ValidationError{Field: "ordering", Message: "ordering must be year or -year"}
	}
	if filter.Year != nil && *filter.Year < 0 {
		return nil, &ValidationError{Field: "year", Message: "year must be non-negative"}
	}
	return s.repo.List(ctx, filter)
}

func (s *movieService) GetView(ctx context.Context, id int64) (*models.MovieView, error) {
	if v, err := s.movieCache.GetView(ctx, id); err == nil && v != nil {
		return v, nil
	}

	v, err := s.repo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.movieCache.SetView(ctx, v); err != nil {
		s.logger.Warn("movie cache set failed", "movie_id", id, "error", err)
	}
	return v, nil
}

func (s *movieService) Create(ctx context.Context, m *models.Movie) error {
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if m.Year < 0 {
		return &ValidationError{Field: "year", Message: "year must be non-negative"}
	}
	return s.repo.Create(ctx, m)
}

func (s *movieService) Update(ctx context.Context, id int64, patch dto.UpdateMovieDTO) (*models.Movie, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.ApplyTo(existing)
	existing.Title = strings.TrimSpace(existing.Title)
	if existing.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if existing.Year < 0 {
		return nil, &ValidationError{Field: "year", Message: "year must be non-negative"}
	}

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	if err := s.movieCache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("movie cache invalidation failed", "movie_id", id, "error", err)
	}
	return existing, nil
}

func (s *movieService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.movieCache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("movie cache invalidation failed", "movie_id", id, "error", err)
	}
	return nil
}

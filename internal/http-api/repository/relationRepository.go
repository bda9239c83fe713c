package repository

import (
	"context"
	"errors"
	"fmt"

	"moviehub/internal/http-api/models"

	"gorm.io/gorm"
)

type RelationRepository interface {
	GetOrCreate(ctx context.Context, userID string, movieID int64) (rel *models.UserMovieRelation, created bool, err error)
	Save(ctx context.Context, rel *models.UserMovieRelation) error
	GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.UserMovieRelation, error)
	RatingStats(ctx context.Context, movieID int64) (sum, count int64, err error)
	CountForMovie(ctx context.Context, movieID int64) (int64, error)
}

type relationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

// GetOrCreate fetches the caller's relation row for a movie, inserting a
// default one when none exists yet. Two concurrent first writes race on the
// (user_id, movie_id) unique index: the loser gets a duplicate-key error and
// resolves it by re-fetching the winner's row, so at most one row ever
// exists per pair.
func (r *relationRepository) GetOrCreate(ctx context.Context, userID string, movieID int64) (*models.UserMovieRelation, bool, error) {
	rel, err := r.GetByUserAndMovie(ctx, userID, movieID)
	if err == nil {
		return rel, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	fresh := &models.UserMovieRelation{UserID: userID, MovieID: movieID}
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, ferr := r.GetByUserAndMovie(ctx, userID, movieID)
			if ferr != nil {
				return nil, false, ferr
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create relation: %w", err)
	}
	return fresh, true, nil
}

func (r *relationRepository) Save(ctx context.Context, rel *models.UserMovieRelation) error {
	if err := r.db.WithContext(ctx).Save(rel).Error; err != nil {
		return fmt.Errorf("save relation: %w", err)
	}
	return nil
}

func (r *relationRepository) GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.UserMovieRelation, error) {
	var rel models.UserMovieRelation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&rel).Error
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// RatingStats returns the sum and count of the non-null rates for a movie in
// one grouped query. Null rates are excluded entirely, a relation without a
// rate does not drag the average toward zero.
func (r *relationRepository) RatingStats(ctx context.Context, movieID int64) (int64, int64, error) {
	var stats struct {
		RateSum   int64
		RateCount int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.UserMovieRelation{}).
		Select("COALESCE(SUM(rate), 0) AS rate_sum, COUNT(rate) AS rate_count").
		Where("movie_id = ?", movieID).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, fmt.Errorf("rating stats: %w", err)
	}
	return stats.RateSum, stats.RateCount, nil
}

func (r *relationRepository) CountForMovie(ctx context.Context, movieID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserMovieRelation{}).
		Where("movie_id = ?", movieID).
		Count(&count).Error
	return count, err
}

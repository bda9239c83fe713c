package repository

import (
	"context"
	"fmt"
	"strings"

	"moviehub/internal/http-api/models"

	"gorm.io/gorm"
)

// MovieFilter holds the recognized list-query options. Nil/empty fields mean
// "no filter". Ordering is validated upstream; the repository only knows
// "year", "-year" and the default id order.
type MovieFilter struct {
	Year     *int
	Search   string
	Ordering string
}

// escapeLike quotes LIKE metacharacters so a search term only ever matches
// as a literal substring.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type MovieRepo struct {
	db *gorm.DB
}

func NewMovieRepo(db *gorm.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// viewSelect aggregates likes and rates per movie in the same query that
// fetches the movie rows, so a list is always exactly one SELECT no matter
// how many movies it returns. "like" needs quoting, it collides with the
// SQL keyword.
const viewSelect = `movies.id, movies.title, movies.tagline, movies.description, movies.year,
	COUNT(CASE WHEN r."like" THEN 1 END) AS annotated_likes,
	COALESCE(SUM(r.rate), 0) AS rate_sum,
	COUNT(r.rate) AS rate_count`

func (r *MovieRepo) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("movies").
		Select(viewSelect).
		Joins(`LEFT JOIN user_movie_relations r ON r.movie_id = movies.id`).
		Group("movies.id, movies.title, movies.tagline, movies.description, movies.year")
}

// List returns the filtered catalog as MovieView rows. Result order is
// deterministic: the requested year ordering with id as tie-break, or plain
// ascending id when no ordering was asked for.
func (r *MovieRepo) List(ctx context.Context, f MovieFilter) ([]models.MovieView, error) {
	q := r.viewQuery(ctx)

	if f.Year != nil {
		q = q.Where("movies.year = ?", *f.Year)
	}
	if f.Search != "" {
		// LOWER() on both sides keeps the match case-insensitive on
		// postgres and sqlite alike
		p := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		q = q.Where(`LOWER(movies.title) LIKE ? ESCAPE '\' OR LOWER(movies.tagline) LIKE ? ESCAPE '\'`, p, p)
	}

	switch f.Ordering {
	case "year":
		q = q.Order("movies.year ASC, movies.id ASC")
	case "-year":
		q = q.Order("movies.year DESC, movies.id ASC")
	default:
		q = q.Order("movies.id ASC")
	}

	var views []models.MovieView
	if err := q.Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return views, nil
}

// GetView fetches a single movie with its live aggregates.
func (r *MovieRepo) GetView(ctx context.Context, id int64) (*models.MovieView, error) {
	var v models.MovieView
	result := r.viewQuery(ctx).Where("movies.id = ?", id).Scan(&v)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (r *MovieRepo) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MovieRepo) Create(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	return nil
}

func (r *MovieRepo) Update(ctx context.Context, id int64, m *models.Movie) error {
	// ensure ID set for Save
	m.ID = id
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	return nil
}

func (r *MovieRepo) Delete(ctx context.Context, id int64) error {
	// relations go first so the delete doesn't depend on the FK cascade
	// being active on every backend
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", id).Delete(&models.UserMovieRelation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Movie{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	return nil
}

// UpdateRating writes the recomputed average into the movie row. A nil
// rating is stored as NULL, not 0.
func (r *MovieRepo) UpdateRating(ctx context.Context, id int64, rating *float64) error {
	result := r.db.WithContext(ctx).Model(&models.Movie{}).Where("id = ?", id).Update("rating", rating)
	if result.Error != nil {
		return fmt.Errorf("update movie rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists is the cheap movie existence probe used by the relation write path.
func (r *MovieRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Movie{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

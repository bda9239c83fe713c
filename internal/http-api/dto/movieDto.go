package dto

import (
	"moviehub/internal/http-api/models"
)

// CreateMovieDTO used for POST /api/movies
type CreateMovieDTO struct {
	Title       string  `json:"title" binding:"required"`
	Tagline     string  `json:"tagline"`
	Description *string `json:"description,omitempty"`
	Year        *int    `json:"year,omitempty"` // defaults to 2019 when omitted
}

// UpdateMovieDTO used for PUT/PATCH /api/movies/:id (partial updates allowed)
type UpdateMovieDTO struct {
	Title       *string `json:"title,omitempty"`
	Tagline     *string `json:"tagline,omitempty"`
	Description *string `json:"description,omitempty"`
	Year        *int    `json:"year,omitempty"`
}

// MovieViewResponse is the wire shape of a catalog entry. Rating is a string
// with exactly 2 decimal digits, or null when the movie has no rates.
type MovieViewResponse struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Tagline        string  `json:"tagline"`
	Description    *string `json:"description"`
	Year           int     `json:"year"`
	AnnotatedLikes int64   `json:"annotated_likes"`
	Rating         *string `json:"rating"`
}

// Converters
func (d CreateMovieDTO) ToModel() models.Movie {
	m := models.Movie{
		Title:       d.Title,
		Tagline:     d.Tagline,
		Description: d.Description,
	}
	if d.Year != nil {
		m.Year = *d.Year
	} else {
		m.Year = 2019
	}
	return m
}

func (d UpdateMovieDTO) ApplyTo(m *models.Movie) {
	if d.Title != nil {
		m.Title = *d.Title
	}
	if d.Tagline != nil {
		m.Tagline = *d.Tagline
	}
	if d.Description != nil {
		m.Description = d.Description
	}
	if d.Year != nil {
		m.Year = *d.Year
	}
}

func FromMovieView(v models.MovieView) MovieViewResponse {
	return MovieViewResponse{
		ID:             v.ID,
		Title:          v.Title,
		Tagline:        v.Tagline,
		Description:    v.Description,
		Year:           v.Year,
		AnnotatedLikes: v.AnnotatedLikes,
		Rating:         models.FormatRating(v.LiveRating()),
	}
}

// FromModel shapes a stored movie (no aggregates yet) for create/update
// responses; the persisted rating field is used as-is.
func FromModel(m models.Movie) MovieViewResponse {
	return MovieViewResponse{
		ID:          m.ID,
		Title:       m.Title,
		Tagline:     m.Tagline,
		Description: m.Description,
		Year:        m.Year,
		Rating:      models.FormatRating(m.Rating),
	}
}

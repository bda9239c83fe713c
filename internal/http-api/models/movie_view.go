package models

// MovieView is the read model returned by catalog queries. It carries the
// persisted movie fields plus aggregates computed live over the relations
// referencing the movie, so a list stays correct even if a recomputation
// was ever skipped. Produced by a single grouped query in the repository.
type MovieView struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Tagline        string  `json:"tagline"`
	Description    *string `json:"description"`
	Year           int     `json:"year"`
	AnnotatedLikes int64   `json:"annotated_likes"`

	// Live aggregate inputs, kept as integers so the rounding stays exact.
	// Tagged for the cache codec; the HTTP layer has its own response shape.
	RateSum   int64 `json:"rate_sum"`
	RateCount int64 `json:"rate_count"`
}

// LiveRating derives the 2-decimal average from the aggregate columns.
func (v MovieView) LiveRating() *float64 {
	return AverageRating(v.RateSum, v.RateCount)
}

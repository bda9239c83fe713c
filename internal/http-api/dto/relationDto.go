package dto

import (
	"moviehub/internal/http-api/models"
)

// RelationPatchDTO carries a partial update to the caller's relation with a
// movie. Nil fields are left untouched. The actor and movie identity come
// from the request, never from the body, so they have no place here.
type RelationPatchDTO struct {
	Like        *bool `json:"like,omitempty"`
	InBookmarks *bool `json:"in_bookmarks,omitempty"`
	Rate        *int  `json:"rate,omitempty"`
}

// IsEmpty reports whether the patch touches nothing.
func (d RelationPatchDTO) IsEmpty() bool {
	return d.Like == nil && d.InBookmarks == nil && d.Rate == nil
}

// RelationResponse mirrors the relation fields a caller may see.
type RelationResponse struct {
	Movie       int64 `json:"movie"`
	Like        bool  `json:"like"`
	InBookmarks bool  `json:"in_bookmarks"`
	Rate        *int  `json:"rate"`
}

func FromModelToRelationResponse(r *models.UserMovieRelation) RelationResponse {
	return RelationResponse{
		Movie:       r.MovieID,
		Like:        r.Like,
		InBookmarks: r.InBookmarks,
		Rate:        r.Rate,
	}
}

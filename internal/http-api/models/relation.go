package models

import "time"

// UserMovieRelation holds one user's opinion of one movie. The composite
// unique index is what makes the insert-or-fetch upsert safe under
// concurrent first writes.
type UserMovieRelation struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_movie"`
	MovieID     int64     `json:"movie_id" gorm:"not null;uniqueIndex:idx_user_movie"`
	Like        bool      `json:"like" gorm:"not null;default:false"`
	InBookmarks bool      `json:"in_bookmarks" gorm:"not null;default:false"`
	Rate        *int      `json:"rate,omitempty" gorm:"check:rate >= 1 AND rate <= 5"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Movie *Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (UserMovieRelation) TableName() string {
	return "user_movie_relations"
}

package models

import "time"

type Movie struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title" gorm:"not null"`
	Tagline     string     `json:"tagline" gorm:"not null;default:'';size:100"`
	Description *string    `json:"description,omitempty"`
	// no gorm default here: a column default would make Create drop an
	// explicit zero year; the 2019 fallback for an omitted year lives in
	// the create DTO instead
	Year        int        `json:"year" gorm:"not null;check:year >= 0"`
	Rating      *float64   `json:"rating,omitempty" gorm:"type:decimal(4,2)"`
	CreatedAt   *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

func (Movie) TableName() string {
	return "movies"
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name  string
		sum   int64
		count int64
		want  string
	}{
		{"two fives and a four", 14, 3, "4.67"},
		{"three and four", 7, 2, "3.50"},
		{"single rate", 5, 1, "5.00"},
		{"exact third", 4, 3, "1.33"},
		{"half rounds up", 9, 2, "4.50"},
		{"repeating", 13, 3, "4.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg := AverageRating(tt.sum, tt.count)
			if assert.NotNil(t, avg) {
				assert.Equal(t, tt.want, *FormatRating(avg))
			}
		})
	}
}

func TestAverageRating_NoRates(t *testing.T) {
	// no rated relations means no rating at all, not a zero rating
	assert.Nil(t, AverageRating(0, 0))
	assert.Nil(t, FormatRating(nil))
}

func TestFormatRating_TwoDecimals(t *testing.T) {
	v := 3.5
	assert.Equal(t, "3.50", *FormatRating(&v))

	w := 4.0
	assert.Equal(t, "4.00", *FormatRating(&w))
}

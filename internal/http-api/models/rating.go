package models

import "fmt"

// AverageRating computes the mean rate for a movie from the sum and count of
// its non-null rates, rounded half-up to 2 decimal places. The arithmetic is
// done on integer hundredths so the rounding is exact (no float drift):
// cents = (200*sum + count) / (2*count). Returns nil when count is 0: a
// movie nobody rated has no rating, not a zero rating.
func AverageRating(sum, count int64) *float64 {
	if count == 0 {
		return nil
	}
	cents := (200*sum + count) / (2 * count)
	avg := float64(cents) / 100
	return &avg
}

// FormatRating renders a rating as a string with exactly 2 decimal digits,
// e.g. 4.67 -> "4.67", 3.5 -> "3.50". Nil stays nil so it serializes as
// JSON null.
func FormatRating(rating *float64) *string {
	if rating == nil {
		return nil
	}
	s := fmt.Sprintf("%.2f", *rating)
	return &s
}

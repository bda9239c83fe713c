package service

import (
	"errors"
	"fmt"
)

var (
	ErrMovieNotFound      = errors.New("movie not found")
	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)

// ValidationError rejects a request before anything is persisted and names
// the field that failed, so handlers can surface a field-level 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

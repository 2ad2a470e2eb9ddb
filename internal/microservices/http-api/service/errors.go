package service

import (
	"errors"

	"mangareader/internal/microservices/http-api/models"
)

var (
	ErrMangaNotFound  = errors.New("manga not found")
	ErrRatingNotFound = errors.New("rating not found")
)

// ValidationError carries per-field messages back to the handler, which
// renders them as {"errors": {...}}.
type ValidationError struct {
	Fields models.ValidationErrors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

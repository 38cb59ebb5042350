// Package domain contains the core entities, repository ports and the pure
// calendar and measurement arithmetic used by the dashboard.
package domain

import "errors"

var (
	// ErrNotFound indicates that the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates that user input was rejected.
	ErrValidation = errors.New("validation failed")
)

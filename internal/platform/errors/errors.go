package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoSavedState        = errors.New("no saved state")
	ErrProviderUnavailable = errors.New("provider unavailable")
)

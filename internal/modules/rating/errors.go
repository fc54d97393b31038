package rating

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("rating requires a completed booking with this vendor")
	ErrConflict   = errors.New("rating already exists")
	ErrNotFound   = errors.New("rating not found")
)

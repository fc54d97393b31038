package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNoCart                  = errors.New("no active cart to check out")
	ErrCartNotSchedulable      = errors.New("cart has no scheduled date or time")
	ErrNotFound                = errors.New("booking not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

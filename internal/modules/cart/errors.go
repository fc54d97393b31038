package cart

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("cart not found")
)

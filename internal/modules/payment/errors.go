package payment

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrInvalidSignature = errors.New("invalid signature")
)

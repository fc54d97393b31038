package payout

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNoteRequired      = errors.New("a note is required when deciding payout requests")
	ErrExceedsBalance    = errors.New("requested amount cannot be greater than pending payout")
	ErrNotFound          = errors.New("payout request not found")
	ErrInvalidTransition = errors.New("invalid payout status transition")
)

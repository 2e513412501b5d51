package core

import "errors"

// Common errors.
var (
	ErrReadOnly          = errors.New("store is in read-only mode")
	ErrNotFound          = errors.New("not found")
	ErrInvalidKind       = errors.New("invalid record kind")
	ErrInvalidStatus     = errors.New("status not allowed for record kind")
	ErrInvalidTransition = errors.New("invalid view transition")
	ErrValidation        = errors.New("validation failed")
)

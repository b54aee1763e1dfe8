package services

import "errors"

// Domain errors returned by the guard and the operations behind it. The
// handler layer maps these onto HTTP statuses. Checks run in a fixed order:
// authentication, existence, ownership, uniqueness.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("invalid input")
)

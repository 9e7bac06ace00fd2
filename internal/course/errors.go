package course

import "errors"

var (
	// ErrNotFound means the target course does not exist. It is reported
	// before any ownership evaluation.
	ErrNotFound = errors.New("course not found")
	// ErrForbidden means the course exists but the caller does not own it.
	ErrForbidden = errors.New("course does not belong to user")
	// ErrOwnerMismatch means a create payload names a different owner than
	// the authenticated user.
	ErrOwnerMismatch = errors.New("course owner must match authenticated user")
)

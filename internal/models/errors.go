package models

import "errors"

var (
	// ErrInvalidID is returned when a path or body identifier is not a valid ObjectID hex.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrValidation wraps all document validation failures.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized covers bad credentials and missing/expired sessions.
	ErrUnauthorized = errors.New("not authenticated")
	// ErrForbidden is returned when the session role is insufficient.
	ErrForbidden = errors.New("insufficient role")
)

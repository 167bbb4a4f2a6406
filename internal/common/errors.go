package common

import "errors"

var (
	// ErrNotAuthenticated is returned by operations that need a signed-in user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrValidation marks input rejected before any request was sent.
	ErrValidation = errors.New("validation error")
)

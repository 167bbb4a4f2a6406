package services

import "errors"

var (
	ErrAlreadyRated       = errors.New("you have already rated this")
	ErrSelfRating         = errors.New("you cannot rate yourself")
	ErrNoSeller           = errors.New("listing has no seller")
	ErrPasswordMismatch   = errors.New("new passwords do not match")
	ErrUnsupportedPayment = errors.New("unsupported payment method")
)

package model

import "errors"

// Common errors used across the application
var (
	// Not-found errors
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found in game")

	// State machine errors
	ErrGameNotWaiting  = errors.New("game is not in waiting state")
	ErrGameNotStarting = errors.New("game is not in starting state")
	ErrGameNotActive   = errors.New("game is not active")

	// Validation errors
	ErrGameFull        = errors.New("game is full")
	ErrInvalidArgument = errors.New("invalid argument")

	// Storage errors. Wraps transient persistence failures so callers can
	// treat them as retryable, distinct from validation failures.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

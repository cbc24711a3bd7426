package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	ErrMsgUserNotFound       = "user not found"
	ErrMsgPredictionNotFound = "prediction not found"
	ErrMsgDuplicateVote      = "user has already voted on this prediction"
	ErrMsgPredictionClosed   = "prediction is not active"
	ErrMsgAlreadyResolved    = "prediction is already resolved"
	ErrMsgValidation         = "invalid input"
	ErrMsgStorageUnavailable = "storage unavailable"
)

// Common domain errors.
// These are used consistently across all layers of the application.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound       = errors.New(ErrMsgUserNotFound)
	ErrPredictionNotFound = errors.New(ErrMsgPredictionNotFound)
	ErrDuplicateVote      = errors.New(ErrMsgDuplicateVote)
	ErrPredictionClosed   = errors.New(ErrMsgPredictionClosed)
	ErrAlreadyResolved    = errors.New(ErrMsgAlreadyResolved)
	ErrValidation         = errors.New(ErrMsgValidation)
	ErrStorageUnavailable = errors.New(ErrMsgStorageUnavailable)
)

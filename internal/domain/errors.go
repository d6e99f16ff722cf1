package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCardType is returned when a card type name is not one of the known types.
	ErrInvalidCardType = errors.New("invalid card type")

	// ErrInvalidStatValue is returned when a stat value has no active variant
	// or its encoded form cannot be decoded.
	ErrInvalidStatValue = errors.New("invalid stat value")
)

package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrNilModelsClient is returned when the service is built without a models client.
	ErrNilModelsClient = errors.New("models client cannot be nil")
)

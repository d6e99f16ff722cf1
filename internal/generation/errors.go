package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when a pipeline stage fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate card content")

	// ErrInvalidResponse is returned when the backend response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from generation backend")

	// ErrContentBlocked is returned when the backend blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during generation")

	// ErrInvalidConfig is returned when the service configuration is invalid
	ErrInvalidConfig = errors.New("invalid generation configuration")

	// ErrEmptyImage is returned when an image with no data is submitted for analysis
	ErrEmptyImage = errors.New("image cannot be empty")

	// ErrEmptyPrompt is returned when artwork is requested without a prompt
	ErrEmptyPrompt = errors.New("art prompt cannot be empty")
)

// Stage names a step of the generation pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageAnalyzeImage     Stage = "analyze_image"
	StageGenerateCardData Stage = "generate_card_data"
	StageGenerateImage    Stage = "generate_image"
)

// StageError records which pipeline stage failed.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface for StageError.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err with the stage it came from.
func NewStageError(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

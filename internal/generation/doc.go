// Package generation defines the boundary between the application core and
// the AI service that turns a captured photo into card content. The Service
// interface describes a three-stage pipeline (analyze the image, derive the
// card fields, synthesize artwork); each stage is independently callable and
// either succeeds completely or returns an error.
//
// Two implementations live here: MockService returns fixed values and is the
// default when no real backend is configured, and PlaceholderService samples
// random stats from an injected source. A Gemini-backed implementation lives
// in internal/platform/gemini.
package generation

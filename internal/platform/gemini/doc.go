// Package gemini provides an implementation of the generation.Service interface
// backed by Google's Gemini and Imagen models.
//
// This package is an infrastructure adapter: it translates between the
// application's generation types and the google.golang.org/genai client
// without exposing the details of the external service to the core.
//
// Key components:
//
// 1. Service:
//   - Implements generation.Service
//   - Sends the captured photo and prompts to the models API
//   - Parses structured JSON responses into generation types
//
// 2. Prompt Management:
//   - Prompts are text/template templates compiled into the binary
//
// 3. Error Handling:
//   - Retries transient failures with exponential backoff and jitter
//   - Maps safety blocks and malformed responses to generation errors
//     that are never retried
package gemini

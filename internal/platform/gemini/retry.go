package gemini

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/phrazzld/snapdex/internal/generation"
	"google.golang.org/genai"
)

// isTransient reports whether err is worth retrying. Safety blocks,
// malformed responses, cancellations and client errors other than rate
// limiting are permanent.
func isTransient(err error) bool {
	if errors.Is(err, generation.ErrContentBlocked) ||
		errors.Is(err, generation.ErrInvalidResponse) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}

	// Network and other transport failures
	return true
}

// withRetry runs call until it succeeds, fails permanently, or the retry
// budget is spent. Delays grow exponentially with jitter:
// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5)).
func (s *Service) withRetry(ctx context.Context, operation string, call func(ctx context.Context) error) error {
	maxRetries := s.maxRetries
	attempt := 0

	for {
		attemptNum := attempt + 1
		s.logger.DebugContext(ctx, "Making Gemini API call",
			"operation", operation,
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		err := call(ctx)
		if err == nil {
			s.logger.DebugContext(ctx, "Gemini API call successful",
				"operation", operation,
				"attempt", attemptNum)
			return nil
		}

		s.logger.ErrorContext(ctx, "Gemini API call failed",
			"operation", operation,
			"attempt", attemptNum,
			"error", err)

		if !isTransient(err) {
			return err
		}

		if attempt >= maxRetries {
			s.logger.WarnContext(ctx, "Maximum retry attempts reached",
				"operation", operation,
				"max_retries", maxRetries)
			return fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		delay := s.backoff(attempt)
		s.logger.InfoContext(ctx, "Retrying after delay",
			"operation", operation,
			"attempt", attemptNum,
			"delay", delay)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}

		attempt++
	}
}

func (s *Service) backoff(attempt int) time.Duration {
	if s.baseDelay <= 0 {
		return 0
	}
	s.rngMu.Lock()
	jitter := 0.5 + s.rng.Float64()*0.5
	s.rngMu.Unlock()
	return time.Duration(float64(s.baseDelay) * math.Pow(2, float64(attempt)) * jitter)
}

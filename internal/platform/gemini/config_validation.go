package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/snapdex/internal/config"
	"github.com/phrazzld/snapdex/internal/generation"
)

// validateConfig checks that API keys and model names are set.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		logger.ErrorContext(ctx, "Missing Gemini API key")
		return fmt.Errorf("%w: GeminiAPIKey cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return fmt.Errorf("%w: ModelName cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ImageModelName == "" {
		return fmt.Errorf("%w: ImageModelName cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.MaxRetries < 0 {
		logger.WarnContext(ctx, "Invalid MaxRetries value",
			"value", cfg.MaxRetries,
			"action", "using default value")
	}

	if cfg.RetryDelaySeconds < 0 {
		logger.WarnContext(ctx, "Invalid RetryDelaySeconds value",
			"value", cfg.RetryDelaySeconds,
			"action", "using default value")
	}

	return nil
}

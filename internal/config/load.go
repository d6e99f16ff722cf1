package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. SNAPDEX_LOG_LEVEL.
const EnvPrefix = "SNAPDEX"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithPaths(".")
}

// LoadWithPaths is Load with explicit directories to search for a snapdex
// config file (snapdex.yaml, snapdex.toml, ...).
func LoadWithPaths(paths ...string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("snapdex")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("storage.driver", StorageSQLite)
	v.SetDefault("storage.path", "snapdex.db")
	v.SetDefault("storage.url", "")
	v.SetDefault("storage.cache_size", 128)

	v.SetDefault("llm.provider", ProviderMock)
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.image_model_name", "imagen-3.0-generate-002")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("llm.placeholder_delay", "2s")
	v.SetDefault("llm.seed", 0)

	v.SetDefault("app.seed_samples", false)
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := cfg.LLM.PlaceholderDelayDuration(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// PlaceholderDelayDuration parses PlaceholderDelay.
func (c LLMConfig) PlaceholderDelayDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.PlaceholderDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid llm.placeholder_delay %q: %w", c.PlaceholderDelay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid llm.placeholder_delay %q: must not be negative", c.PlaceholderDelay)
	}
	return d, nil
}

// RetryDelay returns RetryDelaySeconds as a duration.
func (c LLMConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

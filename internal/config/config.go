package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"required"`
	App     AppConfig     `mapstructure:"app"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// Storage drivers.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// StorageConfig selects and configures the key-value backend that holds the collection.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory sqlite postgres"`
	// Path is the SQLite database file.
	Path string `mapstructure:"path" validate:"required_if=Driver sqlite"`
	// URL is the PostgreSQL connection string.
	URL string `mapstructure:"url" validate:"required_if=Driver postgres"`
	// CacheSize is the number of entries kept in the read cache; zero disables it.
	CacheSize int `mapstructure:"cache_size" validate:"gte=0"`
}

// AI providers.
const (
	ProviderMock        = "mock"
	ProviderPlaceholder = "placeholder"
	ProviderGemini      = "gemini"
)

// LLMConfig contains settings for the card generation backend.
type LLMConfig struct {
	Provider          string `mapstructure:"provider" validate:"required,oneof=mock placeholder gemini"`
	GeminiAPIKey      string `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	ModelName         string `mapstructure:"model_name" validate:"required"`
	ImageModelName    string `mapstructure:"image_model_name" validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0,lte=60"`
	// PlaceholderDelay is how long the placeholder backend waits before answering,
	// as a Go duration string.
	PlaceholderDelay string `mapstructure:"placeholder_delay" validate:"required"`
	// Seed makes placeholder output reproducible; zero seeds from the clock.
	Seed int64 `mapstructure:"seed"`
}

// AppConfig contains application behaviour toggles.
type AppConfig struct {
	// SeedSamples shows the sample cards when the stored collection is empty.
	SeedSamples bool `mapstructure:"seed_samples"`
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. COURSEGEN_SERVER_PORT for server.port.
const EnvPrefix = "COURSEGEN"

// defaults holds the value used for each key when no source sets it.
var defaults = map[string]any{
	"server.port":                     4000,
	"server.log_level":                "info",
	"server.allowed_origins":          "*",
	"server.read_timeout_seconds":     15,
	"server.write_timeout_seconds":    120,
	"server.shutdown_timeout_seconds": 10,
	"llm.model_name":                  "gemini-1.5-flash-latest",
	"llm.temperature":                 0.7,
	"youtube.transcript_language":     "en",
	"course.cache_max_entries":        0,
	"course.cache_ttl_minutes":        0,
	"enrichment.isolate_failures":     false,
}

// envOnlyKeys have no default but must still be bound so that Unmarshal sees them.
var envOnlyKeys = []string{
	"llm.gemini_api_key",
	"llm.base_url",
	"llm.prompt_template_dir",
	"youtube.api_key",
	"youtube.endpoint",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key := range defaults {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding env var for %s: %w", key, err)
		}
	}
	for _, key := range envOnlyKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding env var for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

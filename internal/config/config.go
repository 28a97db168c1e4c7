package config

import (
	"strings"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	YouTube    YouTubeConfig    `mapstructure:"youtube"    validate:"required"`
	Course     CourseConfig     `mapstructure:"course"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// AllowedOrigins is a comma-separated list of CORS origins; "*" allows any.
	AllowedOrigins string `mapstructure:"allowed_origins" validate:"required"`

	ReadTimeoutSeconds     int `mapstructure:"read_timeout_seconds"     validate:"gt=0"`
	WriteTimeoutSeconds    int `mapstructure:"write_timeout_seconds"    validate:"gt=0"`
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// Origins returns the allowed CORS origins as a list.
func (s ServerConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(s.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// ReadTimeout returns the configured read timeout as a duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the configured write timeout as a duration. It must
// cover a full page generation: one model call plus the video searches.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns how long graceful shutdown may wait for in-flight requests.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`

	// BaseURL overrides the Gemini API endpoint. Empty uses the SDK default.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	// PromptTemplateDir replaces the embedded prompt templates when set.
	PromptTemplateDir string  `mapstructure:"prompt_template_dir"`
	Temperature       float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

// YouTubeConfig contains settings for video search and transcript retrieval.
type YouTubeConfig struct {
	APIKey string `mapstructure:"api_key" validate:"required"`

	// Endpoint overrides the YouTube Data API base URL. Empty uses the default.
	Endpoint           string `mapstructure:"endpoint"            validate:"omitempty,url"`
	TranscriptLanguage string `mapstructure:"transcript_language" validate:"required"`
}

// CourseConfig bounds the in-memory course plan cache. Zero means unbounded.
type CourseConfig struct {
	CacheMaxEntries int `mapstructure:"cache_max_entries" validate:"gte=0"`
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes" validate:"gte=0"`
}

// CacheTTL returns the cache entry lifetime; zero disables expiry.
func (c CourseConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// EnrichmentConfig controls video enrichment behavior.
type EnrichmentConfig struct {
	// IsolateFailures keeps a page when individual video searches fail, leaving
	// the failed lessons without a video. When false any failure fails the page.
	IsolateFailures bool `mapstructure:"isolate_failures"`
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"textinsight/internal/validation"
)

// Store drivers.
const (
	StoreNone     = ""
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Generative backend providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderGemini    = "gemini"
)

var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-sonnet-4-5-20250929",
	ProviderOllama:    "mistral",
	ProviderGemini:    "gemini-1.5-flash",
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr   string
	CORSOrigins  string // Comma-separated allowed origins
	RateLimitMax int    // Requests per minute per IP, 0 disables the limiter
	RedisURL     string // Optional shared storage for the rate limiter
	TLSCertFile  string
	TLSKeyFile   string

	// Store
	StoreDriver string // "", "postgres" or "sqlite"
	DatabaseURL string
	SQLitePath  string

	// Generative backend
	LLM LLMConfig

	// Retention
	RetentionDays     int    // 0 keeps analyses forever
	RetentionSchedule string // 5-field cron expression

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"
	LogFile   string // Optional rotated log file, in addition to stderr
}

// LLMConfig selects and tunes the generative backend. The backend counts
// as configured only when the selected provider's credential is present.
type LLMConfig struct {
	Provider         string
	Model            string
	Temperature      float64
	Timeout          time.Duration
	StructuredOutput bool

	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	OllamaHost      string
	GeminiAPIKey    string
}

// Load reads configuration from environment variables with sensible defaults.
// Values from the optional YAML file (CONFIG_FILE, default "config.yaml")
// replace the built-in defaults; environment variables win over both.
func Load() (*Config, error) {
	file, err := LoadYAMLConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if file == nil {
		file = &YAMLConfig{}
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", orDefault(file.LLM.Provider, ProviderOpenAI)))
	model := getEnv("LLM_MODEL", getEnv(strings.ToUpper(provider)+"_MODEL", file.LLM.Model))
	if model == "" {
		model = defaultModels[provider]
	}

	cfg := &Config{
		Env:          getEnv("ENV", "development"),
		ServerAddr:   getEnv("SERVER_ADDR", ":3000"),
		CORSOrigins:  getEnv("CORS_ORIGINS", "*"),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 100),
		RedisURL:     getEnv("REDIS_URL", ""),
		TLSCertFile:  getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:   getEnv("TLS_KEY_FILE", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", orDefault(file.Store.SQLitePath, "textinsight.db")),

		LLM: LLMConfig{
			Provider:         provider,
			Model:            model,
			Temperature:      getEnvFloat("LLM_TEMPERATURE", orDefaultFloat(file.LLM.Temperature, 0.2)),
			Timeout:          getEnvDuration("LLM_TIMEOUT", orDefaultDuration(file.LLM.Timeout, 30*time.Second)),
			StructuredOutput: getEnvBool("LLM_STRUCTURED_OUTPUT", file.LLM.StructuredOutput),
			OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
			AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
			OllamaHost:       getEnv("OLLAMA_HOST", ""),
			GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		},

		RetentionDays:     getEnvInt("RETENTION_DAYS", file.Retention.Days),
		RetentionSchedule: getEnv("RETENTION_SCHEDULE", orDefault(file.Retention.Schedule, "0 3 * * *")),

		LogLevel:  getEnv("LOG_LEVEL", orDefault(file.Logging.Level, "info")),
		LogFormat: getEnv("LOG_FORMAT", orDefault(file.Logging.Format, "text")),
		LogFile:   getEnv("LOG_FILE", file.Logging.File),
	}

	cfg.StoreDriver = strings.ToLower(getEnv("STORE_DRIVER", file.Store.Driver))
	if cfg.StoreDriver == StoreNone && cfg.DatabaseURL != "" {
		cfg.StoreDriver = StorePostgres
	}

	return cfg, nil
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case StoreNone, StoreSQLite:
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if _, ok := defaultModels[c.LLM.Provider]; !ok {
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider))
	}
	if c.LLM.OpenAIBaseURL != "" {
		if ok, msg := validation.ValidateURL(c.LLM.OpenAIBaseURL); !ok {
			errs = append(errs, fmt.Errorf("OPENAI_BASE_URL: %s", msg))
		}
	}
	if c.LLM.OllamaHost != "" {
		if ok, msg := validation.ValidateURL(c.LLM.OllamaURL()); !ok {
			errs = append(errs, fmt.Errorf("OLLAMA_HOST: %s", msg))
		}
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, errors.New("LLM_TEMPERATURE must be between 0 and 2"))
	}
	if c.LLM.Timeout < 0 {
		errs = append(errs, errors.New("LLM_TIMEOUT must be >= 0"))
	}
	if c.RetentionDays < 0 {
		errs = append(errs, errors.New("RETENTION_DAYS must be >= 0"))
	}
	if c.RateLimitMax < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX must be >= 0"))
	}
	return errors.Join(errs...)
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// HasStore returns true if a persistence backend is configured.
func (c *Config) HasStore() bool {
	return c.StoreDriver != StoreNone
}

// Credential returns the credential of the selected provider, or "" when
// the backend is not configured.
func (c LLMConfig) Credential() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	case ProviderOllama:
		return c.OllamaHost
	case ProviderGemini:
		return c.GeminiAPIKey
	}
	return ""
}

// OllamaURL returns OllamaHost with a scheme, defaulting to http.
func (c LLMConfig) OllamaURL() string {
	if c.OllamaHost == "" || strings.Contains(c.OllamaHost, "://") {
		return c.OllamaHost
	}
	return "http://" + c.OllamaHost
}

// Enabled reports whether the selected provider has credentials.
func (c LLMConfig) Enabled() bool {
	return c.Credential() != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func orDefaultFloat(value *float64, fallback float64) float64 {
	if value != nil {
		return *value
	}
	return fallback
}

func orDefaultDuration(value string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return fallback
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points CONFIG_FILE at a path that does not exist so a stray
// config.yaml in the working directory cannot leak into tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	for _, key := range []string{
		"LLM_PROVIDER", "LLM_MODEL", "OPENAI_MODEL", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
		"OLLAMA_HOST", "GEMINI_API_KEY", "STORE_DRIVER", "DATABASE_URL", "RETENTION_DAYS",
		"LLM_TIMEOUT", "LLM_TEMPERATURE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerAddr != ":3000" {
		t.Errorf("ServerAddr = %q, want :3000", cfg.ServerAddr)
	}
	if cfg.LLM.Provider != ProviderOpenAI || cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("LLM = %s/%s, want openai/gpt-4o-mini", cfg.LLM.Provider, cfg.LLM.Model)
	}
	if cfg.LLM.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", cfg.LLM.Temperature)
	}
	if cfg.LLM.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.LLM.Timeout)
	}
	if cfg.LLM.Enabled() {
		t.Error("LLM should be disabled without a credential")
	}
	if cfg.HasStore() {
		t.Error("store should be unconfigured by default")
	}
	if cfg.RetentionSchedule != "0 3 * * *" {
		t.Errorf("RetentionSchedule = %q", cfg.RetentionSchedule)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("DATABASE_URL", "postgres://localhost/textinsight")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.Provider != ProviderAnthropic {
		t.Errorf("Provider = %q, want anthropic", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != defaultModels[ProviderAnthropic] {
		t.Errorf("Model = %q, want provider default", cfg.LLM.Model)
	}
	if !cfg.LLM.Enabled() || cfg.LLM.Credential() != "sk-ant-test" {
		t.Error("anthropic credential should enable the backend")
	}
	if cfg.LLM.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.LLM.Timeout)
	}
	if cfg.StoreDriver != StorePostgres {
		t.Errorf("StoreDriver = %q, want postgres inferred from DATABASE_URL", cfg.StoreDriver)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
llm:
  provider: ollama
  model: llama3
  temperature: 0
  timeout: 10s
store:
  driver: sqlite
  sqlite_path: /tmp/insight.db
retention:
  days: 14
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.Provider != ProviderOllama || cfg.LLM.Model != "llama3" {
		t.Errorf("LLM = %s/%s, want ollama/llama3", cfg.LLM.Provider, cfg.LLM.Model)
	}
	if cfg.LLM.Temperature != 0 {
		t.Errorf("Temperature = %v, want explicit 0 from file", cfg.LLM.Temperature)
	}
	if cfg.LLM.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.LLM.Timeout)
	}
	if cfg.StoreDriver != StoreSQLite || cfg.SQLitePath != "/tmp/insight.db" {
		t.Errorf("store = %s %s", cfg.StoreDriver, cfg.SQLitePath)
	}
	if cfg.RetentionDays != 14 {
		t.Errorf("RetentionDays = %d, want 14", cfg.RetentionDays)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, env should win over file", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("llm: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"postgres without url", func(c *Config) { c.StoreDriver = StorePostgres }, "DATABASE_URL"},
		{"unknown driver", func(c *Config) { c.StoreDriver = "mongo" }, "STORE_DRIVER"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "cohere" }, "LLM_PROVIDER"},
		{"temperature too high", func(c *Config) { c.LLM.Temperature = 3 }, "LLM_TEMPERATURE"},
		{"bad base url", func(c *Config) { c.LLM.OpenAIBaseURL = "ftp://proxy" }, "OPENAI_BASE_URL"},
		{"ollama host without scheme", func(c *Config) { c.LLM.OllamaHost = "localhost:11434" }, ""},
		{"negative retention", func(c *Config) { c.RetentionDays = -1 }, "RETENTION_DAYS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				LLM: LLMConfig{Provider: ProviderOpenAI, Temperature: 0.2, Timeout: time.Second},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the optional config.yaml file.
// It carries non-secret defaults; credentials only come from the environment.
type YAMLConfig struct {
	LLM       LLMFileConfig       `yaml:"llm"`
	Store     StoreFileConfig     `yaml:"store"`
	Retention RetentionFileConfig `yaml:"retention"`
	Logging   LoggingFileConfig   `yaml:"logging"`
}

// LLMFileConfig holds generative backend defaults.
type LLMFileConfig struct {
	Provider         string   `yaml:"provider"`
	Model            string   `yaml:"model"`
	Temperature      *float64 `yaml:"temperature"` // nil keeps the built-in default
	Timeout          string   `yaml:"timeout"`     // Go duration, e.g. "30s"
	StructuredOutput bool     `yaml:"structured_output"`
}

// StoreFileConfig selects the persistence backend.
type StoreFileConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
}

// RetentionFileConfig configures pruning of old analyses.
type RetentionFileConfig struct {
	Days     int    `yaml:"days"`
	Schedule string `yaml:"schedule"`
}

// LoggingFileConfig configures log output.
type LoggingFileConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

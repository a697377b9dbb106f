package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAPIBaseURL is the fixed DeepSeek endpoint root.
	DefaultAPIBaseURL = "https://api.deepseek.com"

	// DefaultRequestTimeout matches the original connector's blocking window.
	DefaultRequestTimeout = 90 * time.Second

	apiKeyEnvVar = "DEEPSEEK_API_KEY"
)

// Duration wraps time.Duration so YAML values like "90s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config represents the application configuration parsed from YAML.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DeepSeek DeepSeekConfig `yaml:"deepseek"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig defines listener configuration for the HTTP node host.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DeepSeekConfig captures credentials and endpoint settings for the upstream API.
type DeepSeekConfig struct {
	APIKey  string   `yaml:"api_key"`
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

// DefaultsConfig holds node-level defaults applied when the caller omits a field.
type DefaultsConfig struct {
	Model            string  `yaml:"model"`
	Temperature      float64 `yaml:"temperature"`
	MaxTokens        int     `yaml:"max_tokens"`
	OutputLanguage   string  `yaml:"output_language"`
	TargetModel      string  `yaml:"target_model"`
	PromptStyle      string  `yaml:"prompt_style"`
	SystemPromptMode string  `yaml:"system_prompt_mode"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		DeepSeek: DeepSeekConfig{
			APIKey:  os.Getenv(apiKeyEnvVar),
			BaseURL: DefaultAPIBaseURL,
			Timeout: Duration(DefaultRequestTimeout),
		},
		Defaults: DefaultsConfig{
			Model:            "deepseek-chat",
			Temperature:      1.0,
			MaxTokens:        512,
			OutputLanguage:   "english",
			TargetModel:      "sdxl",
			PromptStyle:      "Detailed",
			SystemPromptMode: "Improve prompt (default)",
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads YAML configuration from disk, applies defaults and the
// DEEPSEEK_API_KEY environment fallback, and validates the result.
// An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if err := cfg.Validate(); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("resolve config path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return Config{}, fmt.Errorf("read config file %q: %w", absPath, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %q: %w", absPath, err)
	}

	if strings.TrimSpace(cfg.DeepSeek.APIKey) == "" {
		cfg.DeepSeek.APIKey = os.Getenv(apiKeyEnvVar)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate performs sanity checks on the configuration. The API key is
// deliberately not required here: the node accepts a per-invocation key,
// so a missing configured key only fails at execution time.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid TCP port, got %d", c.Server.Port)
	}
	if strings.TrimSpace(c.DeepSeek.BaseURL) == "" {
		return fmt.Errorf("deepseek.base_url must not be empty")
	}
	if c.DeepSeek.Timeout <= 0 {
		return fmt.Errorf("deepseek.timeout must be positive, got %s", time.Duration(c.DeepSeek.Timeout))
	}
	if c.Defaults.Temperature < 0 || c.Defaults.Temperature > 2 {
		return fmt.Errorf("defaults.temperature %v must be within [0.0, 2.0]", c.Defaults.Temperature)
	}
	if c.Defaults.MaxTokens < 1 || c.Defaults.MaxTokens > 8192 {
		return fmt.Errorf("defaults.max_tokens %d must be within [1, 8192]", c.Defaults.MaxTokens)
	}
	return nil
}

// Package config provides configuration loading for the extractor.
// Supports an optional YAML file, a .env file, and environment variables;
// environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/domain"
)

// Config holds all configuration for the extractor
type Config struct {
	API    APIConfig    `yaml:"api"`
	Render RenderConfig `yaml:"render"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// APIConfig holds hosted-API settings
type APIConfig struct {
	Key     string `yaml:"key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// RenderConfig holds default rasterization settings
type RenderConfig struct {
	DPI       int  `yaml:"dpi"`
	Grayscale bool `yaml:"grayscale"`
}

// ServerConfig holds invoke-server settings
type ServerConfig struct {
	Addr             string        `yaml:"addr"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			Model:   "gpt-5",
			BaseURL: "https://api.openai.com/v1",
		},
		Render: RenderConfig{
			DPI: domain.DefaultDPI,
		},
		Server: ServerConfig{
			Addr:             ":8080",
			RequestTimeout:   5 * time.Minute,
			GracefulShutdown: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file at path,
// a .env file in the working directory, and environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, domain.ConfigError(fmt.Sprintf("cannot read config file %s", path), err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, domain.ConfigError(fmt.Sprintf("cannot parse config file %s", path), err)
		}
	}

	// .env is optional; missing file is not an error
	_ = godotenv.Load()

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.API.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("SLD_RENDER_DPI"); v != "" {
		if dpi, err := strconv.Atoi(v); err == nil {
			cfg.Render.DPI = dpi
		}
	}
	if v := os.Getenv("SLD_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SLD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks configuration invariants. The API key is not required
// here; commands that talk to the hosted API check for it themselves.
func (c *Config) Validate() error {
	if c.Render.DPI <= 0 {
		return domain.ConfigError(fmt.Sprintf("render dpi must be positive, got %d", c.Render.DPI), nil)
	}
	if c.API.BaseURL == "" {
		return domain.ConfigError("api base_url cannot be empty", nil)
	}
	if c.Server.Addr == "" {
		return domain.ConfigError("server addr cannot be empty", nil)
	}
	return nil
}

// RequireAPIKey returns the API key or a config error if it is unset
func (c *Config) RequireAPIKey() (string, error) {
	if c.API.Key == "" {
		return "", domain.ConfigError("OPENAI_API_KEY not set; export it or add it to .env", nil)
	}
	return c.API.Key, nil
}

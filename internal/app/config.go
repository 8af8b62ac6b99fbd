package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vk/eegraph/pkg/ee"
	"gopkg.in/yaml.v3"
)

// TokenEnv names the environment variable holding the service token.
const TokenEnv = "EEGRAPH_TOKEN"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	BaseURL     string        `yaml:"base_url"`
	Project     string        `yaml:"project"`
	Encoding    string        `yaml:"encoding"`
	CatalogPath string        `yaml:"catalog_path"` // hcl manifests or json listings
	Timeout     time.Duration `yaml:"timeout"`
	Retries     int           `yaml:"retries"`
	Workers     int           `yaml:"workers"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Token is never read from the file.
	Token string `yaml:"-"`
}

// DefaultConfig returns the settings used when neither a file nor a flag
// sets a value.
func DefaultConfig() Config {
	return Config{
		Encoding:  ee.EncodingCloud.String(),
		Timeout:   30 * time.Second,
		Retries:   2,
		Workers:   4,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// LoadConfig reads a YAML config file over the defaults and picks up the
// token from the environment. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.Token = os.Getenv(TokenEnv)
	return cfg, nil
}

// NewConfig validates cfg and returns a normalized copy.
func NewConfig(cfg Config) (*Config, error) {
	cfg.Encoding = strings.ToLower(strings.TrimSpace(cfg.Encoding))
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := ee.ParseEncoding(c.Encoding); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", c.LogFormat)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries cannot be negative, got %d", c.Retries)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative, got %s", c.Timeout)
	}
	if c.BaseURL != "" && c.Project == "" {
		return errors.New("project is required when base_url is set")
	}
	return nil
}

// EncodingValue returns the parsed wire encoding.
func (c *Config) EncodingValue() ee.Encoding {
	e, _ := ee.ParseEncoding(c.Encoding)
	return e
}

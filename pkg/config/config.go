// Package config loads server configuration and endpoint definitions
// from YAML or JSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrEmptyFile    = errors.New("configuration file is empty")
)

// Config is the full server configuration.
type Config struct {
	Listen string `yaml:"listen" json:"listen"`
	// Prefix is where the dynamic dispatch surface mounts; empty or
	// "/" means the server root.
	Prefix  string        `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty"`
	Webhook WebhookConfig `yaml:"webhook,omitempty" json:"webhook,omitempty"`
	History HistoryConfig `yaml:"history,omitempty" json:"history,omitempty"`

	// Resources and APIs are the definitions registered at startup.
	Resources []ResourceConfig `yaml:"resources,omitempty" json:"resources,omitempty"`
	APIs      []APIConfig      `yaml:"apis,omitempty" json:"apis,omitempty"`
}

// LoggingConfig mirrors the logging package's knobs.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// WebhookConfig tunes outbound webhook delivery.
type WebhookConfig struct {
	Timeout Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// Duration decodes "3s"-style strings from YAML and JSON.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"3s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// HistoryConfig bounds the in-memory request history.
type HistoryConfig struct {
	Capacity int `yaml:"capacity,omitempty" json:"capacity,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen:  ":8080",
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads a Config from a YAML or JSON file, detected by
// extension. Unknown fields are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// ParseYAML decodes a strict YAML config and applies defaults.
func ParseYAML(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse yaml config: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// ParseJSON decodes a strict JSON config and applies defaults.
func ParseJSON(data []byte) (*Config, error) {
	cfg := Default()
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse json config: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

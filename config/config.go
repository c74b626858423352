package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"dockerizer-benchmark/dockerizer"
)

// Config represents the application configuration structure
type Config struct {
	Dockerizer struct {
		Command string `yaml:"command" toml:"command"`
		Shell   string `yaml:"shell" toml:"shell"`
	} `yaml:"dockerizer" toml:"dockerizer"`
	Log struct {
		Level string `yaml:"level" toml:"level"`
	} `yaml:"log" toml:"log"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads and parses a YAML or TOML configuration file, chosen by extension
func LoadConfig(filePath string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filePath)
	}

	// Read file contents
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var config Config
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse TOML configuration: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration format %q", ext)
	}

	config.applyDefaults()

	// Validate fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// applyDefaults fills in optional fields left empty
func (c *Config) applyDefaults() {
	c.Dockerizer.Command = strings.TrimSpace(c.Dockerizer.Command)
	c.Dockerizer.Shell = strings.TrimSpace(c.Dockerizer.Shell)
	if c.Dockerizer.Shell == "" {
		c.Dockerizer.Shell = dockerizer.DefaultShell
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

// Validate checks that all configured values are usable
func (c *Config) Validate() error {
	if c.Dockerizer.Shell == "" {
		return fmt.Errorf("dockerizer.shell cannot be empty")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts a configured log level name into a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", level)
	}
}

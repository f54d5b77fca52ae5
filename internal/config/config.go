package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines configuration for the ssmirror CLI.
type Config struct {
	// Root is the local directory receiving the mirror.
	Root string `yaml:"root"`

	// BaseURL of the collection.
	BaseURL string `yaml:"base_url"`

	// Jobs is the number of parallel download workers.
	Jobs int `yaml:"jobs"`

	// Verbose passes the tool's own output through instead of quieting it.
	Verbose bool `yaml:"verbose"`

	// Progress enables the periodic run status line.
	Progress bool `yaml:"progress"`

	// Bucket, when set, is a gocloud bucket URL (s3://, gs://) that
	// receives a copy of every fetched tarball.
	Bucket string `yaml:"bucket"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// WgetArgs are passed through to the retrieval tool.
	WgetArgs []string `yaml:"wget_args"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Root:     "suitesparse",
		BaseURL:  "https://sparse.tamu.edu/",
		Jobs:     1,
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file, overlaying the
// defaults.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	return Default().Merge(file), nil
}

// LoadFromEnv overlays configuration from SSMIRROR_-prefixed environment
// variables.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("SSMIRROR_ROOT"); v != "" {
		c.Root = v
	}
	if v := os.Getenv("SSMIRROR_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("SSMIRROR_JOBS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse SSMIRROR_JOBS: %w", err)
		}
		c.Jobs = n
	}
	if v := os.Getenv("SSMIRROR_VERBOSE"); v != "" {
		c.Verbose = v == "true" || v == "1"
	}
	if v := os.Getenv("SSMIRROR_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}
	if v := os.Getenv("SSMIRROR_BUCKET"); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv("SSMIRROR_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SSMIRROR_WGET_ARGS"); v != "" {
		c.WgetArgs = strings.Fields(v)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("config: root is required")
	}
	if c.BaseURL == "" {
		return errors.New("config: base_url is required")
	}
	if c.Jobs < 1 {
		return errors.New("config: jobs must be at least 1")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Merge merges override values into c, returning a new Config. Zero values
// in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.Root != "" {
		c.Root = override.Root
	}
	if override.BaseURL != "" {
		c.BaseURL = override.BaseURL
	}
	if override.Jobs != 0 {
		c.Jobs = override.Jobs
	}
	if override.Verbose {
		c.Verbose = true
	}
	if override.Progress {
		c.Progress = true
	}
	if override.Bucket != "" {
		c.Bucket = override.Bucket
	}
	if override.LogLevel != "" {
		c.LogLevel = override.LogLevel
	}
	if len(override.WgetArgs) > 0 {
		c.WgetArgs = override.WgetArgs
	}
	return c
}

// Package config handles loading, validating and saving the application
// configuration. Configuration lives in a YAML file; missing files and
// missing values fall back to sensible defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/pipget/pkg/errors"
	"github.com/glorpus-work/pipget/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// General settings
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// Index settings
	IndexURL     string `yaml:"index_url"`
	ArtifactHost string `yaml:"artifact_host"`

	// Download settings
	DestDir    string   `yaml:"dest_dir,omitempty"` // empty means the current directory
	Extensions []string `yaml:"extensions,flow"`

	// Network settings
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	UserAgent   string        `yaml:"user_agent"`

	// Hook settings
	HooksDir string `yaml:"hooks_dir,omitempty"`

	// Output settings
	LogLevel string `yaml:"log_level"` // error, warn, info, debug
}

// Default configuration values.
const (
	// DefaultIndexURL is the public package index queried when no other
	// index is configured.
	DefaultIndexURL = "https://pypi.org/simple"

	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultUserAgent identifies this tool in HTTP requests.
	DefaultUserAgent = "pipget/0.1"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultExtensions returns the artifact suffixes kept by default.
func DefaultExtensions() []string {
	return []string{"whl", "zip", "tgz", "gz"}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			IndexURL:     DefaultIndexURL,
			ArtifactHost: "https://files.pythonhosted.org/",
			Extensions:   DefaultExtensions(),
			HTTPTimeout:  DefaultHTTPTimeout,
			UserAgent:    DefaultUserAgent,
			LogLevel:     "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig saves configuration to a file. The file is written through a
// temp file and renamed into place.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	// Atomically replace the config file
	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if c.Settings.HTTPTimeout < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "http_timeout cannot be negative")
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Settings.LogLevel)] {
		return errors.Wrapf(errors.ErrConfigValidation, "invalid log level: %s", c.Settings.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "pipget", "config.yaml"), nil
}

// ToMap renders all settings as key/value strings, ordered by key.
func (c *Config) ToMap() map[string]string {
	return map[string]string{
		"index_url":     c.Settings.IndexURL,
		"artifact_host": c.Settings.ArtifactHost,
		"dest_dir":      c.Settings.DestDir,
		"extensions":    strings.Join(c.Settings.Extensions, ","),
		"http_timeout":  c.Settings.HTTPTimeout.String(),
		"user_agent":    c.Settings.UserAgent,
		"hooks_dir":     c.Settings.HooksDir,
		"log_level":     c.Settings.LogLevel,
	}
}

// GetValue returns a single setting rendered as string.
func (c *Config) GetValue(key string) (string, error) {
	value, ok := c.ToMap()[key]
	if !ok {
		return "", errors.Wrapf(errors.ErrConfigKeyUnknown, "%s", key)
	}
	return value, nil
}

// SetValue updates a single setting from its string form.
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "index_url":
		c.Settings.IndexURL = value
	case "artifact_host":
		c.Settings.ArtifactHost = value
	case "dest_dir":
		c.Settings.DestDir = value
	case "extensions":
		parts := strings.Split(value, ",")
		exts := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				exts = append(exts, trimmed)
			}
		}
		c.Settings.Extensions = exts
	case "http_timeout":
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(errors.ErrConfigValidation, "invalid duration %q", value)
		}
		c.Settings.HTTPTimeout = timeout
	case "user_agent":
		c.Settings.UserAgent = value
	case "hooks_dir":
		c.Settings.HooksDir = value
	case "log_level":
		c.Settings.LogLevel = value
	default:
		return errors.Wrapf(errors.ErrConfigKeyUnknown, "%s", key)
	}
	return c.Validate()
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.IndexURL == "" {
		c.Settings.IndexURL = defaults.Settings.IndexURL
	}
	if c.Settings.ArtifactHost == "" {
		c.Settings.ArtifactHost = defaults.Settings.ArtifactHost
	}
	if len(c.Settings.Extensions) == 0 {
		c.Settings.Extensions = defaults.Settings.Extensions
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.UserAgent == "" {
		c.Settings.UserAgent = defaults.Settings.UserAgent
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}

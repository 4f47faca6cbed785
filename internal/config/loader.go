package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".gumcrawl"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .gumcrawl configuration file.
// Every field is optional; zero values leave the corresponding Config
// field untouched.
type File struct {
	// Concurrency overrides the worker-pool width.
	Concurrency int `yaml:"concurrency,omitempty"`

	// PageSize overrides the listing page size.
	PageSize int `yaml:"pageSize,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Timeout overrides the per-request timeout, as a Go duration
	// string (e.g. "45s").
	Timeout string `yaml:"timeout,omitempty"`

	// StrictAvailability overrides the missing-price policy. A pointer
	// distinguishes "unset" from an explicit false.
	StrictAvailability *bool `yaml:"strictAvailability,omitempty"`
}

// LoadConfigFile loads crawl settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// Apply overlays the file's settings onto cfg. Unset fields leave the
// existing values in place, so flags parsed before the overlay still
// win when the file does not mention them.
func (f *File) Apply(cfg *Config) error {
	if f.Concurrency > 0 {
		cfg.Concurrency = f.Concurrency
	}
	if f.PageSize > 0 {
		cfg.PageSize = f.PageSize
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout in config file: %w", err)
		}
		cfg.Timeout = d
	}
	if f.StrictAvailability != nil {
		cfg.StrictAvailability = *f.StrictAvailability
	}
	return nil
}

// FindConfigFile searches for the configuration file:
//  1. If configPath is specified, use it directly
//  2. Look for .gumcrawl in the current directory
//  3. Look for .gumcrawl in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

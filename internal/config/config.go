// Package config loads the optional jira-md client configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/antopolskiy/jira-md/internal/clierr"
)

// ErrInvalid marks configuration files that parsed but failed validation.
var ErrInvalid = errors.New("invalid config")

// Timeout bounds. Requests must never block indefinitely, and anything above
// a minute is indistinguishable from a hang for an interactive caller.
const (
	minTimeout     = 5 * time.Second
	maxTimeout     = 60 * time.Second
	defaultTimeout = 15 * time.Second
)

const (
	defaultMaxRetries = 3
	maxMaxRetries     = 10
	defaultPageSize   = 100
	maxPageSize       = 100
)

// Config represents the jira-md client configuration. All fields are optional;
// credentials always come from the environment, never from this file.
type Config struct {
	// TimeoutSeconds bounds each network call.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
	// MaxRetries caps retry attempts for throttled or failed transport calls.
	MaxRetries *int `yaml:"max_retries,omitempty"`
	// PageSize is the page size used for paginated endpoints.
	PageSize int `yaml:"page_size,omitempty"`
	// SearchFields overrides the field set requested by the assigned search.
	SearchFields []string `yaml:"search_fields,omitempty"`
	// ExcludedStatuses are statuses hidden from assigned output by default.
	ExcludedStatuses []string `yaml:"excluded_statuses,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	retries := defaultMaxRetries
	return &Config{
		TimeoutSeconds:   int(defaultTimeout / time.Second),
		MaxRetries:       &retries,
		PageSize:         defaultPageSize,
		SearchFields:     []string{"summary", "status", "issuetype", "project", "priority", "labels", "created", "updated"},
		ExcludedStatuses: []string{"Done", "Cancelled", "Closed"},
	}
}

// DefaultPath returns the conventional config file location, or "" if the
// user config directory cannot be determined.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "jira-md", "config.yaml")
}

// Load reads the config file at path, merging it over the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path from flag or user config dir
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, clierr.Newf(clierr.InternalError, "reading config %s: %v", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, clierr.Newf(clierr.InternalError, "parsing config %s: %v", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, clierr.Newf(clierr.InternalError, "config %s: %v", path, err)
	}
	return cfg, nil
}

// validate checks ranges and normalizes zero values back to defaults.
func (c *Config) validate() error {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = int(defaultTimeout / time.Second)
	}
	if d := c.Timeout(); d < minTimeout || d > maxTimeout {
		return fmt.Errorf("%w: timeout_seconds must be between %d and %d", ErrInvalid, minTimeout/time.Second, maxTimeout/time.Second)
	}

	if c.MaxRetries == nil {
		retries := defaultMaxRetries
		c.MaxRetries = &retries
	}
	if *c.MaxRetries < 0 || *c.MaxRetries > maxMaxRetries {
		return fmt.Errorf("%w: max_retries must be between 0 and %d", ErrInvalid, maxMaxRetries)
	}

	if c.PageSize == 0 {
		c.PageSize = defaultPageSize
	}
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		return fmt.Errorf("%w: page_size must be between 1 and %d", ErrInvalid, maxPageSize)
	}

	if len(c.SearchFields) == 0 {
		c.SearchFields = Default().SearchFields
	}
	return nil
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Retries returns the retry cap.
func (c *Config) Retries() int {
	if c.MaxRetries == nil {
		return defaultMaxRetries
	}
	return *c.MaxRetries
}

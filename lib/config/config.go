// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the portal client.
//
// Configuration is loaded from a single YAML file specified by:
//   - PORTAL_CONFIG environment variable, or
//   - the default path ~/.config/portal/config.yaml
//
// Unlike server-side deployments, a missing config file is not an
// error: the portal falls back to the built-in localhost endpoints so
// a fresh checkout works against locally running backends with zero
// setup. Individual backend endpoints can be overridden per-service
// through environment variables, which take precedence over the file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Environment variables overriding individual backend endpoints.
// Each backend is deployed and scaled independently, so each URL is
// independently configurable.
const (
	EnvConfigFile       = "PORTAL_CONFIG"
	EnvSessionFile      = "PORTAL_SESSION_FILE"
	EnvAuthURL          = "PORTAL_AUTH_URL"
	EnvAccountsURL      = "PORTAL_ACCOUNTS_URL"
	EnvTransactionsURL  = "PORTAL_TRANSACTIONS_URL"
	EnvNotificationsURL = "PORTAL_NOTIFICATIONS_URL"
)

// Default backend endpoints: one fixed local port per service.
const (
	DefaultAuthURL          = "http://localhost:8082"
	DefaultAccountsURL      = "http://localhost:8080"
	DefaultTransactionsURL  = "http://localhost:8081"
	DefaultNotificationsURL = "http://localhost:8083"
)

// Config is the portal client configuration.
type Config struct {
	// Endpoints configures the base URL of each backend service.
	Endpoints EndpointsConfig `yaml:"endpoints"`

	// SessionFile is where the authenticated session (token plus
	// user snapshot) is persisted between runs. Empty means the
	// default path under the user config directory.
	SessionFile string `yaml:"session_file"`

	// ThemeFile is an optional JSONC file with terminal UI color
	// overrides. Empty means the default path; a missing file is
	// fine (built-in theme applies).
	ThemeFile string `yaml:"theme_file"`
}

// EndpointsConfig holds the base URL for each backend service.
type EndpointsConfig struct {
	Auth          string `yaml:"auth"`
	Accounts      string `yaml:"accounts"`
	Transactions  string `yaml:"transactions"`
	Notifications string `yaml:"notifications"`
}

// Default returns the built-in configuration: the four conventional
// localhost ports and the default session path.
func Default() *Config {
	return &Config{
		Endpoints: EndpointsConfig{
			Auth:          DefaultAuthURL,
			Accounts:      DefaultAccountsURL,
			Transactions:  DefaultTransactionsURL,
			Notifications: DefaultNotificationsURL,
		},
		SessionFile: DefaultSessionFile(),
		ThemeFile:   DefaultThemeFile(),
	}
}

// ConfigFilePath returns the config file path: PORTAL_CONFIG if set,
// otherwise ~/.config/portal/config.yaml (honoring XDG_CONFIG_HOME).
func ConfigFilePath() string {
	if envPath := os.Getenv(EnvConfigFile); envPath != "" {
		return envPath
	}
	return filepath.Join(userConfigDirectory(), "portal", "config.yaml")
}

// DefaultSessionFile returns the session file path: PORTAL_SESSION_FILE
// if set, otherwise ~/.config/portal/session.json.
func DefaultSessionFile() string {
	if envPath := os.Getenv(EnvSessionFile); envPath != "" {
		return envPath
	}
	return filepath.Join(userConfigDirectory(), "portal", "session.json")
}

// DefaultThemeFile returns the theme overrides path,
// ~/.config/portal/theme.jsonc.
func DefaultThemeFile() string {
	return filepath.Join(userConfigDirectory(), "portal", "theme.jsonc")
}

func userConfigDirectory() string {
	if configDirectory := os.Getenv("XDG_CONFIG_HOME"); configDirectory != "" {
		return configDirectory
	}
	homeDirectory, err := os.UserHomeDir()
	if err != nil {
		// Fallback — this should rarely happen.
		return "/tmp"
	}
	return filepath.Join(homeDirectory, ".config")
}

// Load loads configuration from the well-known path. A missing file
// yields the defaults. Environment overrides are applied last, then
// ${VAR} expansion.
func Load() (*Config, error) {
	return LoadFile(ConfigFilePath())
}

// LoadFile loads configuration from a specific file path, merging over
// the defaults. The file may be absent; anything else that goes wrong
// reading or parsing it is an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file: defaults plus environment overrides.
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	if cfg.SessionFile == "" {
		cfg.SessionFile = DefaultSessionFile()
	}
	if cfg.ThemeFile == "" {
		cfg.ThemeFile = DefaultThemeFile()
	}

	return cfg, nil
}

// applyEnvironmentOverrides applies per-service URL overrides. The
// environment wins over the file so a single shell can point one
// backend at a staging deployment without editing the config.
func (c *Config) applyEnvironmentOverrides() {
	if value := os.Getenv(EnvAuthURL); value != "" {
		c.Endpoints.Auth = value
	}
	if value := os.Getenv(EnvAccountsURL); value != "" {
		c.Endpoints.Accounts = value
	}
	if value := os.Getenv(EnvTransactionsURL); value != "" {
		c.Endpoints.Transactions = value
	}
	if value := os.Getenv(EnvNotificationsURL); value != "" {
		c.Endpoints.Notifications = value
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.SessionFile = expandVars(c.SessionFile, vars)
	c.ThemeFile = expandVars(c.ThemeFile, vars)
	c.Endpoints.Auth = expandVars(c.Endpoints.Auth, vars)
	c.Endpoints.Accounts = expandVars(c.Endpoints.Accounts, vars)
	c.Endpoints.Transactions = expandVars(c.Endpoints.Transactions, vars)
	c.Endpoints.Notifications = expandVars(c.Endpoints.Notifications, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. Every endpoint must be
// a parseable absolute URL and the session path must be set.
func (c *Config) Validate() error {
	endpoints := []struct {
		name  string
		value string
	}{
		{"endpoints.auth", c.Endpoints.Auth},
		{"endpoints.accounts", c.Endpoints.Accounts},
		{"endpoints.transactions", c.Endpoints.Transactions},
		{"endpoints.notifications", c.Endpoints.Notifications},
	}

	for _, endpoint := range endpoints {
		if endpoint.value == "" {
			return fmt.Errorf("%s is required", endpoint.name)
		}
		parsed, err := url.Parse(endpoint.value)
		if err != nil {
			return fmt.Errorf("%s: invalid URL %q: %w", endpoint.name, endpoint.value, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%s: URL %q must be absolute (scheme and host)", endpoint.name, endpoint.value)
		}
	}

	if c.SessionFile == "" {
		return fmt.Errorf("session_file is required")
	}

	return nil
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/citedapp/cited/internal/errors"
)

// DefaultBackendURL is the answer service used when none is configured.
const DefaultBackendURL = "http://localhost:8000"

// Config holds the application configuration
type Config struct {
	BackendURL           string `json:"backend_url,omitempty"`           // Base URL of the answer service
	Theme                string `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple")
	NotificationsEnabled bool   `json:"notifications_enabled"` // Desktop notifications when an answer arrives; false must persist since the default is true
	LastSeenVersion      string `json:"last_seen_version,omitempty"`     // Last version the user has run

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cited"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from a specific path. Primarily for testing.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		BackendURL:           DefaultBackendURL,
		NotificationsEnabled: true,
		filePath:             path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, apperrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.ConfigLoadFailed(path, err)
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	cfg.filePath = path
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return apperrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return apperrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return apperrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// GetBackendURL returns the configured backend base URL
func (c *Config) GetBackendURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.BackendURL
}

// SetBackendURL sets the backend base URL
func (c *Config) SetBackendURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BackendURL = url
}

// GetTheme returns the configured theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the theme name
func (c *Config) SetTheme(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = name
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled toggles desktop notifications
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetLastSeenVersion returns the last version the user has run
func (c *Config) GetLastSeenVersion() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastSeenVersion
}

// SetLastSeenVersion records the version the user has run
func (c *Config) SetLastSeenVersion(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastSeenVersion = v
}

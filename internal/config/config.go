package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Storage backend selectors
const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

// Config holds application configuration
type Config struct {
	// Data directory
	DataDir string `json:"data_dir"`

	// Storage backend: "json" or "sqlite"
	Storage string `json:"storage"`

	// UI settings
	DefaultView  string `json:"default_view"`   // "month", "year"
	WeekStartsOn int    `json:"week_starts_on"` // 0=Sunday, 1=Monday

	// New-event defaults
	DefaultStartTime string `json:"default_start_time"`
	DefaultEndTime   string `json:"default_end_time"`
	DefaultColor     string `json:"default_color"`

	// Notification settings
	NotificationsEnabled bool `json:"notifications_enabled"`
	ReminderMins         int  `json:"reminder_mins"`

	// Window state
	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		DataDir:              getDefaultDataDir(),
		Storage:              StorageJSON,
		DefaultView:          "month",
		WeekStartsOn:         0, // Sunday
		DefaultStartTime:     "09:00",
		DefaultEndTime:       "10:00",
		DefaultColor:         "blue",
		NotificationsEnabled: true,
		ReminderMins:         10,
		WindowWidth:          1000,
		WindowHeight:         700,
	}
}

// Load loads config from disk
func Load() (*Config, error) {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.Save()
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves config to disk
func (c *Config) Save() error {
	configPath := getConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EventsPath returns the path of the JSON event file
func (c *Config) EventsPath() string {
	return filepath.Join(c.DataDir, "events.json")
}

// DatabasePath returns the path of the SQLite database
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "gridcal.db")
}

// WeekStart maps the configured week start onto a weekday.
func (c *Config) WeekStart() time.Weekday {
	if c.WeekStartsOn == 1 {
		return time.Monday
	}
	return time.Sunday
}

// getConfigPath returns the path to the config file
func getConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "gridcal", "config.json")
}

// getDefaultDataDir returns the default data directory
func getDefaultDataDir() string {
	dataDir, err := os.UserConfigDir()
	if err != nil {
		dataDir = filepath.Join(os.Getenv("HOME"), ".local", "share")
	}
	return filepath.Join(dataDir, "gridcal")
}

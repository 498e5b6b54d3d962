package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds settings for the local snapshot database.
type DatabaseConfig struct {
	// Path is the SQLite database file location.
	Path string `mapstructure:"path" yaml:"path"`
}

// CalendarConfig pins the calendar policy used to bucket task lists by day.
type CalendarConfig struct {
	// Timezone is an IANA zone name, or "Local" for the host zone.
	// Day keys are computed as midnight in this zone.
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

// Location resolves the configured timezone.
func (c CalendarConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("resolving timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// TasksConfig holds task-related defaults.
type TasksConfig struct {
	// DefaultDueTime seeds the due timestamp for new tasks, "15:04" format.
	DefaultDueTime string `mapstructure:"default_due_time" yaml:"default_due_time"`
}

// LoggingConfig holds logging preferences.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Calendar CalendarConfig `mapstructure:"calendar" yaml:"calendar"`
	Tasks    TasksConfig    `mapstructure:"tasks" yaml:"tasks"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/dayplan/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "dayplan", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &AppConfig{
		Database: DatabaseConfig{
			Path: filepath.Join(home, ".local", "share", "dayplan", "dayplan.db"),
		},
		Calendar: CalendarConfig{Timezone: "Local"},
		Tasks:    TasksConfig{DefaultDueTime: "09:00"},
		Logging:  LoggingConfig{Level: "info", Format: "console"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultAppConfig()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("calendar.timezone", defaults.Calendar.Timezone)
	v.SetDefault("tasks.default_due_time", defaults.Tasks.DefaultDueTime)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaults
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if _, err := ParseTimeOfDay(cfg.Tasks.DefaultDueTime); err != nil {
		return nil, fmt.Errorf("invalid tasks.default_due_time: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("calendar", cfg.Calendar)
	v.Set("tasks", cfg.Tasks)
	v.Set("logging", cfg.Logging)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

package config

import (
	"os"
	"path/filepath"
	"time"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds all configuration options for the billable timer
type Config struct {
	Storage     StorageConfig     `mapstructure:"storage"`
	Billing     BillingConfig     `mapstructure:"billing"`
	Display     DisplayConfig     `mapstructure:"display"`
	Validation  ValidationConfig  `mapstructure:"validation"`
	Application ApplicationConfig `mapstructure:"application"`
}

// StorageConfig selects the persistence backend and where it keeps its files
type StorageConfig struct {
	Backend        string `mapstructure:"backend"`
	DataDir        string `mapstructure:"data_dir"`
	ProjectsFile   string `mapstructure:"projects_file"`
	LedgerFile     string `mapstructure:"ledger_file"`
	DatabaseFile   string `mapstructure:"database_file"`
	DirPermissions uint32 `mapstructure:"dir_permissions"`
}

// BillingConfig holds the defaults used when a session is started without
// an explicit rate or floor. Amounts stay strings until parsed as decimals.
type BillingConfig struct {
	DefaultRate           string `mapstructure:"default_rate"`
	DefaultMinimumMinutes string `mapstructure:"default_minimum_minutes"`
	Currency              string `mapstructure:"currency"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	TimeFormat      string        `mapstructure:"time_format"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	ProjectNameMaxLength int `mapstructure:"project_name_max_length"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Verbose bool          `mapstructure:"verbose"`
}

// DefaultDataDir returns ~/.bt, or .bt in the working directory when the
// home directory cannot be resolved.
func DefaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".bt"
	}
	return filepath.Join(homeDir, ".bt")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:        BackendFile,
			DataDir:        DefaultDataDir(),
			ProjectsFile:   "projects.json",
			LedgerFile:     "sessions.csv",
			DatabaseFile:   "bt.db",
			DirPermissions: 0755,
		},
		Billing: BillingConfig{
			DefaultRate:           "40",
			DefaultMinimumMinutes: "0",
			Currency:              "GBP",
		},
		Display: DisplayConfig{
			RefreshInterval: time.Second,
			TimeFormat:      "2006-01-02 15:04:05",
		},
		Validation: ValidationConfig{
			ProjectNameMaxLength: 100,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Verbose: false,
		},
	}
}

// ProjectsPath returns the full path of the project list file
func (c *Config) ProjectsPath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.ProjectsFile)
}

// LedgerPath returns the full path of the CSV session ledger
func (c *Config) LedgerPath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.LedgerFile)
}

// DatabasePath returns the full path of the SQLite database
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.DatabaseFile)
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return &ConfigError{Field: "storage.backend", Message: "backend must be \"file\" or \"sqlite\""}
	}
	if c.Storage.DataDir == "" {
		return &ConfigError{Field: "storage.data_dir", Message: "data directory cannot be empty"}
	}
	if c.Storage.ProjectsFile == "" {
		return &ConfigError{Field: "storage.projects_file", Message: "projects file cannot be empty"}
	}
	if c.Storage.LedgerFile == "" {
		return &ConfigError{Field: "storage.ledger_file", Message: "ledger file cannot be empty"}
	}
	if c.Storage.DatabaseFile == "" {
		return &ConfigError{Field: "storage.database_file", Message: "database file cannot be empty"}
	}

	if c.Display.RefreshInterval < 100*time.Millisecond {
		return &ConfigError{Field: "display.refresh_interval", Message: "refresh interval must be at least 100ms"}
	}
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	if c.Validation.ProjectNameMaxLength < 1 {
		return &ConfigError{Field: "validation.project_name_max_length", Message: "project name maximum length must be at least 1"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

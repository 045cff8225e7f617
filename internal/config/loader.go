package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. BT_STORAGE_BACKEND.
const EnvPrefix = "BT"

// Loader handles loading configuration from multiple sources
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	v := viper.New()
	setDefaults(v, NewConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	return &Loader{v: v}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with config.yaml from the data directory, if present
// 3. Override with BT_* environment variables
func (l *Loader) Load() (*Config, error) {
	return l.LoadWithOverrides(nil)
}

// LoadWithOverrides loads configuration and applies command line overrides.
// A --data-dir override also decides where config.yaml is looked up.
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	dataDir := l.v.GetString("storage.data_dir")
	if overrides != nil && overrides.DataDir != nil {
		dataDir = *overrides.DataDir
	}
	l.v.AddConfigPath(dataDir)

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if overrides != nil {
		overrides.apply(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ConfigFileUsed returns the path of the config file that was read, if any
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.data_dir", d.Storage.DataDir)
	v.SetDefault("storage.projects_file", d.Storage.ProjectsFile)
	v.SetDefault("storage.ledger_file", d.Storage.LedgerFile)
	v.SetDefault("storage.database_file", d.Storage.DatabaseFile)
	v.SetDefault("storage.dir_permissions", d.Storage.DirPermissions)

	v.SetDefault("billing.default_rate", d.Billing.DefaultRate)
	v.SetDefault("billing.default_minimum_minutes", d.Billing.DefaultMinimumMinutes)
	v.SetDefault("billing.currency", d.Billing.Currency)

	v.SetDefault("display.refresh_interval", d.Display.RefreshInterval)
	v.SetDefault("display.time_format", d.Display.TimeFormat)

	v.SetDefault("validation.project_name_max_length", d.Validation.ProjectNameMaxLength)

	v.SetDefault("application.timeout", d.Application.Timeout)
	v.SetDefault("application.verbose", d.Application.Verbose)
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	Backend         *string
	DataDir         *string
	DefaultRate     *string
	MinimumMinutes  *string
	RefreshInterval *time.Duration
	Verbose         *bool
}

func (o *ConfigOverrides) apply(cfg *Config) {
	if o.Backend != nil {
		cfg.Storage.Backend = *o.Backend
	}
	if o.DataDir != nil {
		cfg.Storage.DataDir = *o.DataDir
	}
	if o.DefaultRate != nil {
		cfg.Billing.DefaultRate = *o.DefaultRate
	}
	if o.MinimumMinutes != nil {
		cfg.Billing.DefaultMinimumMinutes = *o.MinimumMinutes
	}
	if o.RefreshInterval != nil {
		cfg.Display.RefreshInterval = *o.RefreshInterval
	}
	if o.Verbose != nil {
		cfg.Application.Verbose = *o.Verbose
	}
}

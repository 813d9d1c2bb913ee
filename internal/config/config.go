package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	Storage    StorageConfig  `mapstructure:"storage"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	Security   SecurityConfig `mapstructure:"security"`
	Log        LogConfig      `mapstructure:"log"`
	ConfigPath string         `mapstructure:"-"`
}

type StorageConfig struct {
	Backend   string `mapstructure:"backend"`
	Path      string `mapstructure:"path"`
	MultiUser bool   `mapstructure:"multi_user"`
}

type DefaultsConfig struct {
	Currency string `mapstructure:"currency"`
	User     string `mapstructure:"user"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func NewDefault() *Config {
	return &Config{
		Storage:  StorageConfig{Backend: BackendJSON, Path: ""},
		Defaults: DefaultsConfig{Currency: "USD"},
		Security: SecurityConfig{BcryptCost: bcrypt.DefaultCost},
		Log:      LogConfig{Level: "warn"},
	}
}

// SetDefaults registers the default values on v so that they are written to
// a freshly created config file and can be overridden from the environment.
func SetDefaults(v *viper.Viper) {
	d := NewDefault()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.multi_user", d.Storage.MultiUser)
	v.SetDefault("defaults.currency", d.Defaults.Currency)
	v.SetDefault("defaults.user", d.Defaults.User)
	v.SetDefault("security.bcrypt_cost", d.Security.BcryptCost)
	v.SetDefault("log.level", d.Log.Level)
}

// Decode unmarshals v into a Config and validates it.
func Decode(v *viper.Viper) (*Config, error) {
	cfg := NewDefault()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Defaults.Currency = strings.ToUpper(strings.TrimSpace(cfg.Defaults.Currency))
	cfg.ConfigPath = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be one of json, sqlite, memory (got %q)", c.Storage.Backend))
	}

	if money.GetCurrency(c.Defaults.Currency) == nil {
		errs = append(errs, fmt.Errorf("defaults.currency %q is not a known ISO 4217 code", c.Defaults.Currency))
	}

	if c.Security.BcryptCost != 0 && (c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost) {
		errs = append(errs, fmt.Errorf("security.bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// LogLevel parses Log.Level (debug, info, warn, error).
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log.level must be debug, info, warn or error (got %q)", c.Log.Level)
	}
	return level, nil
}

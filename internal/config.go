package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultServerURL = "http://127.0.0.1:8000"
	DefaultTimeout   = 30 * time.Second
	EnvPrefix        = "MOSJE"
)

// Config holds the client settings resolved from flags, env and config file
type Config struct {
	ServerURL    string        `mapstructure:"server" validate:"required,url"`
	UserID       string        `mapstructure:"user" validate:"required"`
	Language     string        `mapstructure:"language" validate:"required,len=2"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
	DatabasePath string        `mapstructure:"database" validate:"required"`
	Verbose      bool          `mapstructure:"verbose"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfigDir returns ~/.mosje
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mosje"
	}
	return filepath.Join(home, ".mosje")
}

// SetConfigDefaults registers the default values on v
func SetConfigDefaults(v *viper.Viper) {
	v.SetDefault("server", DefaultServerURL)
	v.SetDefault("user", DefaultUserID)
	v.SetDefault("language", DefaultLanguage)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("database", filepath.Join(DefaultConfigDir(), "preferences.db"))
	v.SetDefault("verbose", false)
}

// LoadConfig resolves the configuration. An explicit configFile must exist;
// otherwise ~/.mosje/config.yaml is read when present. A .env file in the
// working directory is loaded into the environment first.
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		LogWarn("Failed to load .env file: %v", err)
	}

	SetConfigDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		defaultFile := filepath.Join(DefaultConfigDir(), "config.yaml")
		if _, err := os.Stat(defaultFile); err == nil {
			v.SetConfigFile(defaultFile)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
			LogDebug("Using config file %s", defaultFile)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ConfigError{
			Field: fe.Field(),
			Err:   fmt.Errorf("failed %q check (value %v)", fe.Tag(), fe.Value()),
		}
	}
	return &ConfigError{Field: "config", Err: err}
}

// Identity returns the configured user identity
func (c *Config) Identity() Identity {
	return StaticIdentity(c.UserID)
}

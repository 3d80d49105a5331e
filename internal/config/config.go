// Package config loads service settings from flags, environment, an optional
// config file and an optional .env file, in that order of precedence.
package config

import (
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	envPrefix         = "CATALOG"
	configFileEnvName = "CATALOG_CONFIG_FILE"
	dotEnvFile        = ".env"

	FlagConfig      = "config"
	FlagHTTPAddr    = "http-addr"
	FlagLogLevel    = "log-level"
	FlagDatasetFile = "dataset-file"
	FlagDatabaseURL = "database-url"
)

type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

type RateLimit struct {
	SearchPerMinute int `mapstructure:"search_per_minute"`
}

type Config struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	LogLevel        string        `mapstructure:"log_level"`
	DatasetFile     string        `mapstructure:"dataset_file"`
	DatabaseURL     string        `mapstructure:"database_url"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Metrics         Metrics       `mapstructure:"metrics"`
	RateLimit       RateLimit     `mapstructure:"rate_limit"`
}

// RegisterFlags adds the flags Load understands to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(FlagConfig, "", "config file (yaml)")
	flags.String(FlagHTTPAddr, ":8080", "http listen address")
	flags.String(FlagLogLevel, "info", "log level: debug, info, warn, error")
	flags.String(FlagDatasetFile, "", "load the catalog from this yaml/json file instead of the built-in records")
	flags.String(FlagDatabaseURL, "", "load the catalog from this postgres database")
}

// Load resolves the configuration. flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.Wrapf(err, "load %s", dotEnvFile)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return Config{}, err
		}
	}

	if path := configFilePath(flags); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(err, "read config file")
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("dataset_file", "")
	v.SetDefault("database_url", "")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.token", "")
	v.SetDefault("rate_limit.search_per_minute", 0)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	binds := map[string]string{
		"http_addr":    FlagHTTPAddr,
		"log_level":    FlagLogLevel,
		"dataset_file": FlagDatasetFile,
		"database_url": FlagDatabaseURL,
	}
	for key, name := range binds {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "bind flag %s", name)
		}
	}
	return nil
}

func configFilePath(flags *pflag.FlagSet) string {
	if flags != nil {
		if f := flags.Lookup(FlagConfig); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	return os.Getenv(configFileEnvName)
}

func (c Config) Validate() error {
	var errs []error

	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http_addr: required"))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, errors.Wrap(err, "log_level"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout: must be positive"))
	}
	if c.RateLimit.SearchPerMinute < 0 {
		errs = append(errs, errors.New("rate_limit.search_per_minute: must not be negative"))
	}

	return errors.Join(errs...)
}

// DatasetSource names where the catalog will be loaded from.
func (c Config) DatasetSource() string {
	switch {
	case c.DatabaseURL != "":
		return "postgres"
	case c.DatasetFile != "":
		return "file"
	default:
		return "seed"
	}
}

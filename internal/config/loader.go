package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load builds the configuration from defaults, then the YAML file at path
// (GlobalConfigPath when empty), then STREAKHQ_* environment variables. A
// .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if path == "" {
		path = GlobalConfigPath()
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	// The database follows data_dir unless it was set explicitly.
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "streakhq.db")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("data_dir", c.DataDir)
	v.SetDefault("db_path", "")
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("cloud.driver", c.Cloud.Driver)
	v.SetDefault("cloud.dsn", c.Cloud.DSN)
	v.SetDefault("cloud.debounce", c.Cloud.Debounce)
	v.SetDefault("auth.secret", c.Auth.Secret)
	v.SetDefault("auth.ttl", c.Auth.TTL)
	v.SetDefault("watch.schedule", c.Watch.Schedule)
	v.SetDefault("api.addr", c.API.Addr)
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Cloud.Driver {
	case DriverNone, DriverSQLite:
	case DriverPostgres:
		if c.Cloud.DSN == "" {
			return errors.New("cloud.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown cloud.driver %q (want sqlite or postgres)", c.Cloud.Driver)
	}
	if c.Cloud.Debounce < 0 {
		return errors.New("cloud.debounce must not be negative")
	}
	if c.Auth.TTL < 0 {
		return errors.New("auth.ttl must not be negative")
	}
	return nil
}

// CloudDSN is where the cloud store lives. The sqlite driver defaults to a
// cloud.db file next to the local database.
func (c *Config) CloudDSN() string {
	if c.Cloud.DSN == "" && c.Cloud.Driver == DriverSQLite {
		return filepath.Join(c.DataDir, "cloud.db")
	}
	return c.Cloud.DSN
}

// SlogLevel maps log_level to a slog level, defaulting to warn.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}

// Show writes the configuration as YAML with secrets masked.
func (c *Config) Show(w io.Writer) error {
	out := *c
	if out.Auth.Secret != "" {
		out.Auth.Secret = "********"
	}
	if out.Cloud.DSN != "" && out.Cloud.Driver == DriverPostgres {
		out.Cloud.DSN = "********"
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

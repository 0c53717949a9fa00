package config

import "time"

// Config is the effective runtime configuration.
type Config struct {
	DataDir  string      `yaml:"data_dir" mapstructure:"data_dir"`
	DBPath   string      `yaml:"db_path" mapstructure:"db_path"`
	LogLevel string      `yaml:"log_level" mapstructure:"log_level"`
	Cloud    CloudConfig `yaml:"cloud" mapstructure:"cloud"`
	Auth     AuthConfig  `yaml:"auth" mapstructure:"auth"`
	Watch    WatchConfig `yaml:"watch" mapstructure:"watch"`
	API      APIConfig   `yaml:"api" mapstructure:"api"`
}

// CloudConfig selects the remote snapshot store. An empty driver disables
// cloud sync.
type CloudConfig struct {
	Driver   string        `yaml:"driver" mapstructure:"driver"`
	DSN      string        `yaml:"dsn" mapstructure:"dsn"`
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

type AuthConfig struct {
	Secret string        `yaml:"secret" mapstructure:"secret"`
	TTL    time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type WatchConfig struct {
	Schedule string `yaml:"schedule" mapstructure:"schedule"`
}

type APIConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

const (
	DriverNone     = ""
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

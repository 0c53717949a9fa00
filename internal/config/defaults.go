package config

import (
	"os"
	"path/filepath"
	"time"
)

const envPrefix = "STREAKHQ"

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	dataDir := DefaultDataDir()
	return &Config{
		DataDir:  dataDir,
		DBPath:   filepath.Join(dataDir, "streakhq.db"),
		LogLevel: "warn",
		Cloud: CloudConfig{
			Debounce: 2 * time.Second,
		},
		Auth: AuthConfig{
			TTL: 90 * 24 * time.Hour,
		},
		Watch: WatchConfig{
			Schedule: "@every 15m",
		},
		API: APIConfig{
			Addr: "127.0.0.1:8787",
		},
	}
}

// DefaultDataDir is ~/.streakhq, or ./.streakhq when there is no home
// directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".streakhq"
	}
	return filepath.Join(home, ".streakhq")
}

// GlobalConfigPath returns the path of the user config file.
func GlobalConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

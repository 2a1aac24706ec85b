package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the optional on-disk configuration. Every field has a
// usable zero/default value; command flags override config values.
type Config struct {
	// Workers is the exploration worker-pool size (0 = NumCPU).
	Workers int `toml:"workers"`
	// MaxSize is the default crossing-count cap for exploration.
	MaxSize int `toml:"max_size"`
	// CacheDir overrides the XDG cache directory.
	CacheDir string `toml:"cache_dir"`
	// RedisAddr enables the Redis cache backend for the server.
	RedisAddr string `toml:"redis_addr"`
	// MongoURI enables the MongoDB census backend.
	MongoURI string `toml:"mongo_uri"`
	// MongoDatabase is the census database name.
	MongoDatabase string `toml:"mongo_database"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxSize:       8,
		MongoDatabase: appName,
	}
}

// configPath returns the config file location (~/.config/skein/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file, falling back to defaults when the
// file is absent or unreadable. A malformed file is ignored rather than
// fatal; commands surface the defaults instead.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	path, err := configPath()
	if err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return DefaultConfig()
	}
	return cfg
}

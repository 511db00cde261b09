// internal/config/config.go
//
// Process settings.
// Responsibilities:
//   - Reading the environment (after main has applied .env) into Config.
//   - Defaults for every optional setting.
//   - Range checks that struct tags cannot express.

package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Log     LogConfig
	History HistoryConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        `env:"PORT"            env-default:"5175"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN"   env-default:"http://localhost:5173"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"10s"`
}

// DataConfig locates the dictionary data tree.
// An empty Dir selects the embedded sample data.
type DataConfig struct {
	Dir string `env:"DATA_DIR"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

// HistoryConfig selects the check-history store.
// An empty DB keeps history in memory, bounded by Limit.
type HistoryConfig struct {
	DB    string `env:"HISTORY_DB"`
	Limit int    `env:"HISTORY_LIMIT" env-default:"1000"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that tags cannot express.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: LOG_FORMAT must be json or console, got %q", c.Log.Format)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("config: REQUEST_TIMEOUT must be positive")
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("config: HISTORY_LIMIT must be positive")
	}
	return nil
}

// Package config loads server settings from defaults, an optional YAML file
// and the environment, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/benbeisheim/chessrules-backend/internal/errors"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
	Store       StoreConfig       `yaml:"store"`
	Matchmaking MatchmakingConfig `yaml:"matchmaking"`
}

type ServerConfig struct {
	Addr           string `yaml:"addr"`
	AllowedOrigins string `yaml:"allowedOrigins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// StoreConfig picks the snapshot backend. Driver is one of memory, redis,
// badger or postgres.
type StoreConfig struct {
	Driver      string        `yaml:"driver"`
	RedisURL    string        `yaml:"redisUrl"`
	BadgerDir   string        `yaml:"badgerDir"`
	DatabaseURL string        `yaml:"databaseUrl"`
	SessionTTL  time.Duration `yaml:"sessionTTL"`
}

type MatchmakingConfig struct {
	Interval time.Duration `yaml:"interval"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: "http://localhost:5173",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Store: StoreConfig{
			Driver:     "memory",
			BadgerDir:  "data/sessions",
			SessionTTL: 24 * time.Hour,
		},
		Matchmaking: MatchmakingConfig{
			Interval: 5 * time.Second,
		},
	}
}

// Load builds the configuration. path may be empty, in which case only the
// defaults and environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %v: %w", path, err, errors.ErrInvalidConfig)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Addr, "CHESS_ADDR")
	setString(&c.Server.AllowedOrigins, "CHESS_ALLOWED_ORIGINS")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Log.File, "LOG_FILE")
	setString(&c.Store.Driver, "CHESS_STORE")
	setString(&c.Store.RedisURL, "REDIS_URL")
	setString(&c.Store.BadgerDir, "BADGER_DIR")
	setString(&c.Store.DatabaseURL, "DATABASE_URL")

	if err := setDuration(&c.Store.SessionTTL, "CHESS_SESSION_TTL"); err != nil {
		return err
	}
	return setDuration(&c.Matchmaking.Interval, "CHESS_MATCHMAKING_INTERVAL")
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "server address is required")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown log format %q", c.Log.Format)
	}
	if c.Store.SessionTTL < 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "session TTL must not be negative")
	}
	if c.Matchmaking.Interval <= 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "matchmaking interval must be positive")
	}

	switch c.Store.Driver {
	case "memory":
	case "redis":
		if c.Store.RedisURL == "" {
			return errors.Wrap(errors.ErrInvalidConfig, "REDIS_URL is required for the redis store")
		}
	case "badger":
		if c.Store.BadgerDir == "" {
			return errors.Wrap(errors.ErrInvalidConfig, "BADGER_DIR is required for the badger store")
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			return errors.Wrap(errors.ErrInvalidConfig, "DATABASE_URL is required for the postgres store")
		}
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown store driver %q", c.Store.Driver)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// setDuration accepts Go durations ("90s", "1h") or a plain number of seconds.
func setDuration(dst *time.Duration, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(n) * time.Second
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "%s: %v", key, err)
	}
	*dst = d
	return nil
}

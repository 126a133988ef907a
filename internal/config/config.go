package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jengzang/pawtrack-backend-go/internal/grid"
)

// Config 应用配置
type Config struct {
	Port        string `toml:"port"`
	DBPath      string `toml:"db_path"`
	JWTSecret   string `toml:"jwt_secret"`
	AccessKey   string `toml:"access_key"`   // exchanged for a token at /auth/token
	AuthEnabled bool   `toml:"auth_enabled"` // protect mutating routes
	LogLevel    string `toml:"log_level"`    // debug, info, warn, error
	Development bool   `toml:"development"`  // human readable logs
	Timezone    string `toml:"timezone"`     // IANA name for calendar-day filters, "Local" by default

	RateLimit RateLimitConfig `toml:"rate_limit"`
	Grid      grid.Config     `toml:"grid"`
}

// DefaultJWTSecret is the placeholder signing key. It is refused once auth is enabled.
const DefaultJWTSecret = "your-secret-key-change-in-production"

// RateLimitConfig caps requests per client IP
type RateLimitConfig struct {
	Requests      int `toml:"requests"`
	WindowSeconds int `toml:"window_seconds"`
}

// Window returns the limiter window as a duration
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Port:      ":8080",
		DBPath:    "./data/pawtrack.db",
		JWTSecret: DefaultJWTSecret,
		LogLevel:  "info",
		Timezone:  "Local",
		RateLimit: RateLimitConfig{Requests: 120, WindowSeconds: 60},
		Grid:      grid.DefaultConfig(),
	}
}

// Load 加载配置: defaults, then the TOML file at path (if any), then the environment
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if !strings.HasPrefix(v, ":") && !strings.Contains(v, ":") {
			v = ":" + v
		}
		cfg.Port = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("ACCESS_KEY"); v != "" {
		cfg.AccessKey = v
	}
	if v := os.Getenv("AUTH_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AuthEnabled = b
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if c.AuthEnabled {
		if c.AccessKey == "" {
			return errors.New("auth_enabled requires access_key")
		}
		if c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret {
			return errors.New("auth_enabled requires a non-default jwt_secret")
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

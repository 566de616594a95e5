package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Env     string `envconfig:"APP_ENV" default:"development"`
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	UI      UIConfig
	Sandbox SandboxConfig
}

// backend API configuration
type APIConfig struct {
	BaseURL  string        `envconfig:"API_BASE_URL" default:"http://localhost:8000/api/"`
	Timeout  time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	LoginURL string        `envconfig:"LOGIN_URL" default:"/login.html"`
}

// local session storage configuration
type SessionConfig struct {
	Backend string `envconfig:"SESSION_BACKEND" default:"file"`
	Path    string `envconfig:"SESSION_PATH" default:".interviewdesk/session.json"`
	Secret  string `envconfig:"SESSION_SECRET"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Prefix   string `envconfig:"REDIS_PREFIX" default:"interviewdesk:"`
}

type UIConfig struct {
	Lang     string `envconfig:"UI_LANG" default:"zh"`
	PageSize int    `envconfig:"UI_PAGE_SIZE" default:"10"`
}

// in-memory backend used for local development and tests
type SandboxConfig struct {
	Port         int    `envconfig:"SANDBOX_PORT" default:"8000"`
	SessionToken string `envconfig:"SANDBOX_SESSION_TOKEN"`
	Username     string `envconfig:"SANDBOX_USERNAME" default:"interviewer"`
	Seed         bool   `envconfig:"SANDBOX_SEED" default:"true"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL: %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}
	switch c.Session.Backend {
	case "file":
		if strings.TrimSpace(c.Session.Path) == "" {
			return fmt.Errorf("SESSION_PATH is required for the file backend")
		}
	case "redis":
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("invalid SESSION_BACKEND: %s (must be one of: file, redis)", c.Session.Backend)
	}
	if n := len(c.Session.Secret); n != 0 && n != 16 && n != 24 && n != 32 {
		return fmt.Errorf("SESSION_SECRET must be 16, 24, or 32 bytes (got %d)", n)
	}
	if c.UI.PageSize < 1 {
		return fmt.Errorf("UI_PAGE_SIZE must be at least 1")
	}
	if c.Sandbox.Port < 1 || c.Sandbox.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Sandbox.Port)
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetSandboxAddr() string {
	return fmt.Sprintf(":%d", c.Sandbox.Port)
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Env=%s, API.BaseURL=%s, API.Timeout=%s, Session.Backend=%s, "+
		"Session.Encrypted=%t, UI.Lang=%s, UI.PageSize=%d, Sandbox.Port=%d}",
		c.Env, c.API.BaseURL, c.API.Timeout, c.Session.Backend,
		c.Session.Secret != "", c.UI.Lang, c.UI.PageSize, c.Sandbox.Port)
}

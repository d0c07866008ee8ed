// Package config loads and finalizes the service configuration: a TOML
// base file, an optional environment overlay, and SCOUT_* environment
// variable overrides applied through each sub-config's three-phase
// finalize (defaults, env, validate).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/outpost-labs/scout/internal/cse"
	"github.com/outpost-labs/scout/internal/notify"
	"github.com/outpost-labs/scout/pkg/database"
	"github.com/outpost-labs/scout/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvScoutEnv             = "SCOUT_ENV"
	EnvScoutShutdownTimeout = "SCOUT_SHUTDOWN_TIMEOUT"
	EnvScoutVersion         = "SCOUT_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "SCOUT_DB_HOST",
	Port:            "SCOUT_DB_PORT",
	Name:            "SCOUT_DB_NAME",
	User:            "SCOUT_DB_USER",
	Password:        "SCOUT_DB_PASSWORD",
	SSLMode:         "SCOUT_DB_SSL_MODE",
	MaxOpenConns:    "SCOUT_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "SCOUT_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "SCOUT_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "SCOUT_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "SCOUT_STORAGE_CONTAINER_NAME",
	ConnectionString: "SCOUT_STORAGE_CONNECTION_STRING",
	AccountURL:       "SCOUT_STORAGE_ACCOUNT_URL",
	URLTTLMinutes:    "SCOUT_STORAGE_URL_TTL_MINUTES",
}

// The CSE key and engine ID fall back to the names earlier deployments
// of this pipeline used when the SCOUT_* variables are unset.
var cseEnv = &cse.Env{
	APIKey:   "SCOUT_CSE_API_KEY",
	EngineID: "SCOUT_CSE_ENGINE_ID",
}

var cseFallbackEnv = &cse.Env{
	APIKey:   "GOOGLE_API_KEY_FOR_CSE",
	EngineID: "GOOGLE_CSE_ID",
}

var mailEnv = &notify.Env{
	Host:     "SCOUT_MAIL_HOST",
	Port:     "SCOUT_MAIL_PORT",
	Username: "SCOUT_MAIL_USERNAME",
	Password: "SCOUT_MAIL_PASSWORD",
	From:     "SCOUT_MAIL_FROM",
}

// Config is the root configuration for the Scout service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Gemini          GeminiConfig    `toml:"gemini"`
	CSE             cse.Config      `toml:"cse"`
	Mail            notify.Config   `toml:"mail"`
	Engine          EngineConfig    `toml:"engine"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the SCOUT_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvScoutEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Gemini.Merge(&overlay.Gemini)
	c.CSE.Merge(&overlay.CSE)
	c.Mail.Merge(&overlay.Mail)
	c.Engine.Merge(&overlay.Engine)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Gemini.Finalize(geminiEnv); err != nil {
		return fmt.Errorf("gemini: %w", err)
	}
	if err := c.CSE.Finalize(cseFallbackEnv); err != nil {
		return fmt.Errorf("cse: %w", err)
	}
	if err := c.CSE.Finalize(cseEnv); err != nil {
		return fmt.Errorf("cse: %w", err)
	}
	if err := c.Mail.Finalize(mailEnv); err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	if err := c.Engine.Finalize(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.Database.Name == "" {
		c.Database.Name = "scout"
	}
	if c.Database.User == "" {
		c.Database.User = "scout"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvScoutShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvScoutVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvScoutEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

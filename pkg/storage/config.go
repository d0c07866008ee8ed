package storage

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds Azure Blob Storage connection parameters for run artifacts.
// Storage is optional: with neither a connection string nor an account URL
// the service runs without artifact uploads and reports stay inline.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	AccountURL       string `toml:"account_url"`
	URLTTLMinutes    int    `toml:"url_ttl_minutes"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	ContainerName    string
	ConnectionString string
	AccountURL       string
	URLTTLMinutes    string
}

// Enabled reports whether artifact storage is configured at all.
func (c *Config) Enabled() bool {
	return c.ConnectionString != "" || c.AccountURL != ""
}

// URLTTL returns the signed URL lifetime.
func (c *Config) URLTTL() time.Duration {
	return time.Duration(c.URLTTLMinutes) * time.Minute
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.AccountURL != "" {
		c.AccountURL = overlay.AccountURL
	}
	if overlay.URLTTLMinutes != 0 {
		c.URLTTLMinutes = overlay.URLTTLMinutes
	}
}

func (c *Config) loadDefaults() {
	if c.ContainerName == "" {
		c.ContainerName = "artifacts"
	}
	if c.URLTTLMinutes == 0 {
		c.URLTTLMinutes = 60
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.ContainerName != "" {
		if v := os.Getenv(env.ContainerName); v != "" {
			c.ContainerName = v
		}
	}
	if env.ConnectionString != "" {
		if v := os.Getenv(env.ConnectionString); v != "" {
			c.ConnectionString = v
		}
	}
	if env.AccountURL != "" {
		if v := os.Getenv(env.AccountURL); v != "" {
			c.AccountURL = v
		}
	}
	if env.URLTTLMinutes != "" {
		if v := os.Getenv(env.URLTTLMinutes); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.URLTTLMinutes = n
			}
		}
	}
}

func (c *Config) validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.ContainerName == "" {
		return fmt.Errorf("container_name required")
	}
	if c.URLTTLMinutes < 0 {
		return fmt.Errorf("url_ttl_minutes must not be negative")
	}
	return nil
}

package cse

import (
	"fmt"
	"os"
)

const defaultMaxResults = 10

// Config holds Google Custom Search credentials for LinkedIn profile
// lookups. The search is optional: without both an API key and an engine
// ID, profile lookups are skipped and runs proceed without contacts.
type Config struct {
	APIKey     string `toml:"api_key"`
	EngineID   string `toml:"engine_id"`
	MaxResults int    `toml:"max_results"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	APIKey   string
	EngineID string
}

// Enabled reports whether the custom search API is fully configured.
func (c *Config) Enabled() bool {
	return c.APIKey != "" && c.EngineID != ""
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
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.EngineID != "" {
		c.EngineID = overlay.EngineID
	}
	if overlay.MaxResults != 0 {
		c.MaxResults = overlay.MaxResults
	}
}

func (c *Config) loadDefaults() {
	if c.MaxResults == 0 {
		c.MaxResults = defaultMaxResults
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.EngineID != "" {
		if v := os.Getenv(env.EngineID); v != "" {
			c.EngineID = v
		}
	}
}

func (c *Config) validate() error {
	if c.MaxResults < 1 || c.MaxResults > 10 {
		return fmt.Errorf("max_results must be between 1 and 10, got %d", c.MaxResults)
	}
	return nil
}

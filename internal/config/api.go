package config

import (
	"fmt"
	"os"

	"github.com/outpost-labs/scout/pkg/formatting"
	"github.com/outpost-labs/scout/pkg/middleware"
	"github.com/outpost-labs/scout/pkg/openapi"
	"github.com/outpost-labs/scout/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "SCOUT_CORS_ENABLED",
	Origins:          "SCOUT_CORS_ORIGINS",
	AllowedMethods:   "SCOUT_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "SCOUT_CORS_ALLOWED_HEADERS",
	AllowCredentials: "SCOUT_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "SCOUT_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "SCOUT_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "SCOUT_PAGINATION_MAX_PAGE_SIZE",
}

var authEnv = &middleware.AuthEnv{
	Enabled:  "SCOUT_AUTH_ENABLED",
	Issuer:   "SCOUT_AUTH_ISSUER",
	Audience: "SCOUT_AUTH_AUDIENCE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "SCOUT_OPENAPI_TITLE",
	Description: "SCOUT_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and auth settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	Auth        middleware.AuthConfig `toml:"auth"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// MaxBodySizeBytes returns the request body cap for run submissions.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 1024 * 1024 // 1MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS, pagination, and auth configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.Auth.Merge(&overlay.Auth)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("SCOUT_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("SCOUT_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}

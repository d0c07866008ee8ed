package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
)

// AuthConfig holds OIDC bearer token validation settings. Auth is
// optional: when disabled, the middleware passes requests through.
type AuthConfig struct {
	Enabled  bool   `toml:"enabled"`
	Issuer   string `toml:"issuer"`
	Audience string `toml:"audience"`
}

// AuthEnv maps auth config fields to environment variable names for
// override injection.
type AuthEnv struct {
	Enabled  string
	Issuer   string
	Audience string
}

// Finalize applies environment variable overrides and validation.
func (c *AuthConfig) Finalize(env *AuthEnv) error {
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields from overlay. Enabled always applies.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	c.Enabled = overlay.Enabled

	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.Audience != "" {
		c.Audience = overlay.Audience
	}
}

func (c *AuthConfig) loadEnv(env *AuthEnv) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			c.Enabled = v == "true" || v == "1"
		}
	}
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.Audience != "" {
		if v := os.Getenv(env.Audience); v != "" {
			c.Audience = v
		}
	}
}

func (c *AuthConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Issuer == "" {
		return fmt.Errorf("issuer required when auth is enabled")
	}
	if c.Audience == "" {
		return fmt.Errorf("audience required when auth is enabled")
	}
	return nil
}

// Auth returns middleware that validates Bearer tokens against the
// configured OIDC issuer. Provider discovery happens on the first
// authenticated request so startup does not depend on issuer
// availability.
func Auth(cfg *AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	var (
		once     sync.Once
		verifier *oidc.IDTokenVerifier
		initErr  error
	)

	verify := func(ctx context.Context) (*oidc.IDTokenVerifier, error) {
		once.Do(func() {
			provider, err := oidc.NewProvider(context.WithoutCancel(ctx), cfg.Issuer)
			if err != nil {
				initErr = fmt.Errorf("discover oidc provider %s: %w", cfg.Issuer, err)
				return
			}
			verifier = provider.Verifier(&oidc.Config{ClientID: cfg.Audience})
		})
		return verifier, initErr
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			v, err := verify(r.Context())
			if err != nil {
				logger.Error("oidc provider unavailable", "error", err)
				http.Error(w, "authentication unavailable", http.StatusServiceUnavailable)
				return
			}

			if _, err := v.Verify(r.Context(), raw); err != nil {
				logger.Warn("token rejected", "error", err)
				unauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="scout"`)
	http.Error(w, message, http.StatusUnauthorized)
}

// Package api assembles the API module: run execution, the run archive,
// engine metrics, artifact downloads, and the OpenAPI document.
package api

import (
	"net/http"

	"github.com/outpost-labs/scout/internal/config"
	"github.com/outpost-labs/scout/internal/engine"
	"github.com/outpost-labs/scout/internal/infrastructure"
	"github.com/outpost-labs/scout/internal/notify"
	"github.com/outpost-labs/scout/pkg/middleware"
	"github.com/outpost-labs/scout/pkg/module"
)

// NewModule creates the API module with all handlers and middleware.
func NewModule(
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
	executor Executor,
	notifier notify.System,
	metrics *engine.Metrics,
) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra, executor, notifier, metrics)
	domain := NewDomain(runtime)

	spec, err := buildSpec(cfg)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime, spec)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Auth(&cfg.API.Auth, runtime.Logger))

	return m, nil
}

package main

import (
	"encoding/json"
	"net/http"

	"github.com/outpost-labs/scout/internal/api"
	"github.com/outpost-labs/scout/internal/config"
	"github.com/outpost-labs/scout/internal/engine"
	"github.com/outpost-labs/scout/internal/infrastructure"
	"github.com/outpost-labs/scout/internal/notify"
	"github.com/outpost-labs/scout/pkg/middleware"
	"github.com/outpost-labs/scout/pkg/module"
	"github.com/outpost-labs/scout/web/scalar"
)

type Modules struct {
	API    *module.Module
	Scalar *module.Module
}

func NewModules(
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
	executor api.Executor,
	metrics *engine.Metrics,
) (*Modules, error) {
	notifier, err := buildNotifier(cfg, infra)
	if err != nil {
		return nil, err
	}

	apiModule, err := api.NewModule(cfg, infra, executor, notifier, metrics)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar")
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
	}, nil
}

func buildNotifier(cfg *config.Config, infra *infrastructure.Infrastructure) (notify.System, error) {
	if !cfg.Mail.Enabled() {
		infra.Logger.Warn("mail not configured, notifications disabled")
		return nil, nil
	}
	return notify.New(&cfg.Mail, infra.Logger)
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}

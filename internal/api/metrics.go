package api

import (
	"log/slog"
	"net/http"

	"github.com/outpost-labs/scout/internal/engine"
	"github.com/outpost-labs/scout/pkg/handlers"
	"github.com/outpost-labs/scout/pkg/routes"
)

type metricsHandler struct {
	metrics *engine.Metrics
	logger  *slog.Logger
}

func newMetricsHandler(runtime *Runtime) *metricsHandler {
	return &metricsHandler{
		metrics: runtime.Metrics,
		logger:  runtime.Logger.With("handler", "metrics"),
	}
}

func (h *metricsHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/metrics",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Snapshot},
		},
	}
}

// Snapshot returns the engine's run and step counters. An empty snapshot
// is served when metrics collection is not wired.
func (h *metricsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if h.metrics == nil {
		handlers.RespondJSON(w, http.StatusOK, engine.MetricsSnapshot{})
		return
	}
	handlers.RespondJSON(w, http.StatusOK, h.metrics.Snapshot())
}

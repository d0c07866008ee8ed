package api

import (
	"context"

	"github.com/outpost-labs/scout/internal/config"
	"github.com/outpost-labs/scout/internal/engine"
	"github.com/outpost-labs/scout/internal/infrastructure"
	"github.com/outpost-labs/scout/internal/notify"
	"github.com/outpost-labs/scout/pkg/pagination"
)

// Executor runs a research request to completion. *engine.Engine is the
// production implementation; handler tests substitute fakes.
type Executor interface {
	Execute(ctx context.Context, input engine.RunInput) (*engine.Output, error)
}

// Runtime extends Infrastructure with the run engine and API-scoped
// collaborators. Notifier and Metrics may be nil.
type Runtime struct {
	*infrastructure.Infrastructure
	Executor    Executor
	Notifier    notify.System
	Metrics     *engine.Metrics
	Pagination  pagination.Config
	MaxBodySize int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
	executor Executor,
	notifier notify.System,
	metrics *engine.Metrics,
) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Executor:    executor,
		Notifier:    notifier,
		Metrics:     metrics,
		Pagination:  cfg.API.Pagination,
		MaxBodySize: cfg.API.MaxBodySizeBytes(),
	}
}

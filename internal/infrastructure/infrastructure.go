// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies (logging, database, artifact storage) that the
// run engine and domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/outpost-labs/scout/internal/config"
	"github.com/outpost-labs/scout/pkg/database"
	"github.com/outpost-labs/scout/pkg/lifecycle"
	"github.com/outpost-labs/scout/pkg/storage"
)

// Infrastructure holds the core systems required by the service. Storage
// is nil when artifact storage is not configured; reports are then
// returned inline and podcast audio is not persisted.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	var store storage.System
	if cfg.Storage.Enabled() {
		store, err = storage.New(&cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
	} else {
		logger.Warn("artifact storage not configured, reports will be returned inline")
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	return nil
}

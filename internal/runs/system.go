package runs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/outpost-labs/scout/internal/engine"
	"github.com/outpost-labs/scout/pkg/pagination"
)

// System defines the public contract for the run archive. Runs are
// archived once, after execution finishes; the engine owns run IDs, so
// completed records reuse the engine's run ID and failed records (which
// have no projected output) receive a fresh one.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Run], error)

	Find(ctx context.Context, id uuid.UUID) (*Run, error)

	// RecordCompleted archives a run that produced output, degraded or not.
	RecordCompleted(ctx context.Context, input engine.RunInput, out *engine.Output, took time.Duration) (*Run, error)
	// RecordFailed archives a run that ended in a fatal failure.
	RecordFailed(ctx context.Context, input engine.RunInput, runErr error, took time.Duration) (*Run, error)
}

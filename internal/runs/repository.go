package runs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/outpost-labs/scout/internal/engine"
	"github.com/outpost-labs/scout/pkg/pagination"
	"github.com/outpost-labs/scout/pkg/query"
	"github.com/outpost-labs/scout/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a run archive implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "runs"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Run], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Topic", "CompanyName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	archived, err := repository.QueryMany(ctx, r.db, pageSQL, scanRun, pageArgs...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	result := pagination.NewPageResult(archived, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Run, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	archived, err := repository.QueryOne(ctx, r.db, q, scanRun, args...)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &archived, nil
}

func (r *repo) RecordCompleted(
	ctx context.Context,
	input engine.RunInput,
	out *engine.Output,
	took time.Duration,
) (*Run, error) {
	output, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal run output: %w", err)
	}

	archived, err := r.insert(ctx, record{
		id:         out.RunID,
		input:      input,
		status:     StatusCompleted,
		output:     output,
		errorCount: len(out.Errors),
		took:       took,
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("run archived",
		"id", archived.ID,
		"topic", archived.Topic,
		"status", archived.Status,
		"soft_errors", archived.ErrorCount,
	)
	return archived, nil
}

func (r *repo) RecordFailed(
	ctx context.Context,
	input engine.RunInput,
	runErr error,
	took time.Duration,
) (*Run, error) {
	message := runErr.Error()

	archived, err := r.insert(ctx, record{
		id:     uuid.New(),
		input:  input,
		status: StatusFailed,
		msg:    &message,
		took:   took,
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("run archived",
		"id", archived.ID,
		"topic", archived.Topic,
		"status", archived.Status,
	)
	return archived, nil
}

type record struct {
	id         uuid.UUID
	input      engine.RunInput
	status     string
	output     json.RawMessage
	msg        *string
	errorCount int
	took       time.Duration
}

func (r *repo) insert(ctx context.Context, rec record) (*Run, error) {
	q := `
		INSERT INTO runs(id, topic, approach, company_name, video_requested, podcast_requested,
			status, output, error, error_count, completed_at, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), $11)
		RETURNING id, topic, approach, company_name, video_requested, podcast_requested,
			status, output, error, error_count, created_at, completed_at, duration_ms`

	var company *string
	if rec.input.CompanyName != "" {
		company = &rec.input.CompanyName
	}

	archived, err := repository.QueryOne(ctx, r.db, q, scanRun,
		rec.id,
		rec.input.Topic,
		string(rec.input.Approach),
		company,
		rec.input.VideoURL != "",
		rec.input.CreatePodcast,
		rec.status,
		rec.output,
		rec.msg,
		rec.errorCount,
		rec.took.Milliseconds(),
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &archived, nil
}

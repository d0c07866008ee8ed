package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultStepTimeout bounds a step when no configured timeout applies.
const DefaultStepTimeout = 2 * time.Minute

// Config tunes run execution. StepTimeout bounds every step; Timeouts
// overrides the bound per step kind. ParallelEnrichment runs lead
// identification and the LinkedIn contact search together on the company
// path; their results merge in a fixed order either way, so the output
// does not depend on the setting.
type Config struct {
	StepTimeout        time.Duration
	Timeouts           map[StepKind]time.Duration
	ParallelEnrichment bool
}

func (c Config) timeout(kind StepKind) time.Duration {
	if d, ok := c.Timeouts[kind]; ok && d > 0 {
		return d
	}
	if c.StepTimeout > 0 {
		return c.StepTimeout
	}
	return DefaultStepTimeout
}

// Engine executes research runs over a fixed step set. One engine serves
// many runs; each run owns its own state.
type Engine struct {
	steps    Steps
	config   Config
	path     Router
	video    Router
	podcast  Router
	observer Observer
	logger   *slog.Logger
}

// New builds an engine. Every step must be bound; observer may be nil.
func New(steps Steps, cfg Config, logger *slog.Logger, observer Observer) (*Engine, error) {
	if err := steps.validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	if observer == nil {
		observer = NoopObserver{}
	}

	return &Engine{
		steps:    steps,
		config:   cfg,
		path:     PathRouter(),
		video:    VideoRouter(),
		podcast:  PodcastRouter(),
		observer: observer,
		logger:   logger.With("system", "engine"),
	}, nil
}

// Execute runs a single research request to completion. A run that
// reaches the end of the pipeline returns its projected output even when
// soft step failures degraded the result; the error return is reserved
// for invalid input, cancellation, and failed report synthesis.
func (e *Engine) Execute(ctx context.Context, input RunInput) (*Output, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	st := NewRunState(input)
	started := time.Now()
	e.observer.OnRunStart(ctx, st)

	if err := e.run(ctx, st); err != nil {
		e.observer.OnRunFailed(ctx, st, err)
		return nil, err
	}

	out := Project(st)
	e.observer.OnRunCompleted(ctx, st, time.Since(started))
	return out, nil
}

func (e *Engine) run(ctx context.Context, st *RunState) error {
	switch e.path.Decide(st) {
	case DecideCompanyResearch:
		if err := e.execute(ctx, st, StepCompanyResearch); err != nil {
			return err
		}
		if err := e.aborted(ctx); err != nil {
			return err
		}
		if err := e.enrich(ctx, st); err != nil {
			return err
		}
	default:
		if err := e.execute(ctx, st, StepTopicSearch); err != nil {
			return err
		}
	}

	if err := e.aborted(ctx); err != nil {
		return err
	}

	if e.video.Decide(st) == DecideVideoAnalysis {
		if err := e.execute(ctx, st, StepVideoAnalysis); err != nil {
			return err
		}
		if err := e.aborted(ctx); err != nil {
			return err
		}
	}

	if err := e.execute(ctx, st, StepSynthesis); err != nil {
		return fmt.Errorf("%w: %w", ErrReportFailed, err)
	}

	if err := e.aborted(ctx); err != nil {
		return err
	}

	if e.podcast.Decide(st) == DecidePodcast {
		if err := e.execute(ctx, st, StepPodcast); err != nil {
			return err
		}
	}

	return nil
}

// enrich runs lead identification and the LinkedIn contact search after
// company research. Lead identification is skipped outright when company
// research failed; the contact search depends only on the input and runs
// regardless. With ParallelEnrichment both steps execute together and
// their updates are applied in a fixed order, leads first.
func (e *Engine) enrich(ctx context.Context, st *RunState) error {
	runLeads := !st.StepFailed(StepCompanyResearch)
	if !runLeads {
		st.recordSkip(StepLeads)
		e.observer.OnStepSkipped(ctx, st, StepLeads)
	}

	if e.config.ParallelEnrichment && runLeads {
		var leads, contacts stepOutcome

		var g errgroup.Group
		g.Go(func() error {
			leads = e.perform(ctx, st, StepLeads)
			return nil
		})
		g.Go(func() error {
			contacts = e.perform(ctx, st, StepCseSearch)
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}

		if err := e.settle(ctx, st, StepLeads, leads); err != nil {
			return err
		}
		if err := e.settle(ctx, st, StepCseSearch, contacts); err != nil {
			return err
		}
		return e.aborted(ctx)
	}

	if runLeads {
		if err := e.execute(ctx, st, StepLeads); err != nil {
			return err
		}
		if err := e.aborted(ctx); err != nil {
			return err
		}
	}

	if err := e.execute(ctx, st, StepCseSearch); err != nil {
		return err
	}
	return e.aborted(ctx)
}

type stepOutcome struct {
	update *Update
	err    error
	took   time.Duration
}

func (e *Engine) execute(ctx context.Context, st *RunState, kind StepKind) error {
	return e.settle(ctx, st, kind, e.perform(ctx, st, kind))
}

// perform invokes a step under its timeout without touching run state.
func (e *Engine) perform(ctx context.Context, st *RunState, kind StepKind) stepOutcome {
	e.observer.OnStepStart(ctx, st, kind)

	budget := e.config.timeout(kind)
	stepCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	started := time.Now()
	update, err := e.steps.lookup(kind)(stepCtx, st)
	took := time.Since(started)

	if err != nil && ctx.Err() == nil && errors.Is(stepCtx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("timed out after %s: %w", budget, err)
	}

	return stepOutcome{update: update, err: err, took: took}
}

// settle applies a step outcome to run state: successful updates are
// written once, failures are recorded, and the error is returned only
// when the step is fatal to the run.
func (e *Engine) settle(ctx context.Context, st *RunState, kind StepKind, out stepOutcome) error {
	err := out.err
	if err == nil {
		if err = st.apply(out.update); err != nil {
			e.logger.ErrorContext(ctx, "step update rejected",
				"run_id", st.ID,
				"step", kind,
				"error", err,
			)
		}
	}

	e.observer.OnStepCompleted(ctx, st, kind, err, out.took)

	if err != nil {
		fatal := kind == StepSynthesis
		st.recordError(kind, fatal, err)
		if fatal {
			return err
		}
	}

	return nil
}

func (e *Engine) aborted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRunCancelled, err)
	}
	return nil
}

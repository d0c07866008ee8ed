package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives run and step lifecycle callbacks. Implementations
// must be safe for concurrent use and should return quickly; the engine
// invokes them inline, and step callbacks can arrive from concurrent
// enrichment steps.
type Observer interface {
	OnRunStart(ctx context.Context, st *RunState)
	OnRunCompleted(ctx context.Context, st *RunState, d time.Duration)
	OnRunFailed(ctx context.Context, st *RunState, err error)
	OnStepStart(ctx context.Context, st *RunState, kind StepKind)
	OnStepCompleted(ctx context.Context, st *RunState, kind StepKind, err error, d time.Duration)
	OnStepSkipped(ctx context.Context, st *RunState, kind StepKind)
}

// NoopObserver ignores all events. It is the default when no observer is
// configured.
type NoopObserver struct{}

func (NoopObserver) OnRunStart(context.Context, *RunState)                    {}
func (NoopObserver) OnRunCompleted(context.Context, *RunState, time.Duration) {}
func (NoopObserver) OnRunFailed(context.Context, *RunState, error)            {}
func (NoopObserver) OnStepStart(context.Context, *RunState, StepKind)         {}
func (NoopObserver) OnStepCompleted(context.Context, *RunState, StepKind, error, time.Duration) {
}
func (NoopObserver) OnStepSkipped(context.Context, *RunState, StepKind) {}

// NewCompositeObserver fans events out to each non-nil observer.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}

	switch len(filtered) {
	case 0:
		return NoopObserver{}
	case 1:
		return filtered[0]
	default:
		return &compositeObserver{observers: filtered}
	}
}

type compositeObserver struct {
	observers []Observer
}

func (c *compositeObserver) OnRunStart(ctx context.Context, st *RunState) {
	for _, o := range c.observers {
		o.OnRunStart(ctx, st)
	}
}

func (c *compositeObserver) OnRunCompleted(ctx context.Context, st *RunState, d time.Duration) {
	for _, o := range c.observers {
		o.OnRunCompleted(ctx, st, d)
	}
}

func (c *compositeObserver) OnRunFailed(ctx context.Context, st *RunState, err error) {
	for _, o := range c.observers {
		o.OnRunFailed(ctx, st, err)
	}
}

func (c *compositeObserver) OnStepStart(ctx context.Context, st *RunState, kind StepKind) {
	for _, o := range c.observers {
		o.OnStepStart(ctx, st, kind)
	}
}

func (c *compositeObserver) OnStepCompleted(ctx context.Context, st *RunState, kind StepKind, err error, d time.Duration) {
	for _, o := range c.observers {
		o.OnStepCompleted(ctx, st, kind, err, d)
	}
}

func (c *compositeObserver) OnStepSkipped(ctx context.Context, st *RunState, kind StepKind) {
	for _, o := range c.observers {
		o.OnStepSkipped(ctx, st, kind)
	}
}

// NewLoggingObserver logs run and step lifecycle events through the given
// logger, or slog.Default when nil.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &loggingObserver{logger: logger}
}

type loggingObserver struct {
	logger *slog.Logger
}

func (o *loggingObserver) OnRunStart(ctx context.Context, st *RunState) {
	o.logger.InfoContext(ctx, "run started",
		"run_id", st.ID,
		"topic", st.Input.Topic,
		"approach", st.Input.Approach,
	)
}

func (o *loggingObserver) OnRunCompleted(ctx context.Context, st *RunState, d time.Duration) {
	o.logger.InfoContext(ctx, "run completed",
		"run_id", st.ID,
		"duration", d,
		"errors", len(st.Errors),
	)
}

func (o *loggingObserver) OnRunFailed(ctx context.Context, st *RunState, err error) {
	o.logger.ErrorContext(ctx, "run failed",
		"run_id", st.ID,
		"error", err,
	)
}

func (o *loggingObserver) OnStepStart(ctx context.Context, st *RunState, kind StepKind) {
	o.logger.InfoContext(ctx, "step started",
		"run_id", st.ID,
		"step", kind,
	)
}

func (o *loggingObserver) OnStepCompleted(ctx context.Context, st *RunState, kind StepKind, err error, d time.Duration) {
	if err != nil {
		o.logger.ErrorContext(ctx, "step failed",
			"run_id", st.ID,
			"step", kind,
			"duration", d,
			"error", err,
		)
		return
	}

	o.logger.InfoContext(ctx, "step completed",
		"run_id", st.ID,
		"step", kind,
		"duration", d,
	)
}

func (o *loggingObserver) OnStepSkipped(ctx context.Context, st *RunState, kind StepKind) {
	o.logger.InfoContext(ctx, "step skipped",
		"run_id", st.ID,
		"step", kind,
	)
}

// Metrics counts run and step outcomes. It implements Observer and can be
// combined with the logging observer through NewCompositeObserver.
type Metrics struct {
	NoopObserver

	runsStarted    atomic.Int64
	runsCompleted  atomic.Int64
	runsFailed     atomic.Int64
	stepsCompleted atomic.Int64
	stepsFailed    atomic.Int64
	stepsSkipped   atomic.Int64
	stepDuration   atomic.Int64
}

// MetricsSnapshot is an immutable view of Metrics.
type MetricsSnapshot struct {
	RunsStarted   int64 `json:"runs_started"`
	RunsCompleted int64 `json:"runs_completed"`
	RunsFailed    int64 `json:"runs_failed"`
	RunsActive    int64 `json:"runs_active"`

	StepsCompleted  int64         `json:"steps_completed"`
	StepsFailed     int64         `json:"steps_failed"`
	StepsSkipped    int64         `json:"steps_skipped"`
	AvgStepDuration time.Duration `json:"avg_step_duration"`
}

func (m *Metrics) OnRunStart(context.Context, *RunState) {
	m.runsStarted.Add(1)
}

func (m *Metrics) OnRunCompleted(context.Context, *RunState, time.Duration) {
	m.runsCompleted.Add(1)
}

func (m *Metrics) OnRunFailed(context.Context, *RunState, error) {
	m.runsFailed.Add(1)
}

func (m *Metrics) OnStepCompleted(_ context.Context, _ *RunState, _ StepKind, err error, d time.Duration) {
	if err != nil {
		m.stepsFailed.Add(1)
		return
	}
	m.stepsCompleted.Add(1)
	m.stepDuration.Add(d.Nanoseconds())
}

func (m *Metrics) OnStepSkipped(context.Context, *RunState, StepKind) {
	m.stepsSkipped.Add(1)
}

// Snapshot captures the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	started := m.runsStarted.Load()
	completed := m.runsCompleted.Load()
	failed := m.runsFailed.Load()
	steps := m.stepsCompleted.Load()

	var avg time.Duration
	if steps > 0 {
		avg = time.Duration(m.stepDuration.Load() / steps)
	}

	return MetricsSnapshot{
		RunsStarted:     started,
		RunsCompleted:   completed,
		RunsFailed:      failed,
		RunsActive:      started - completed - failed,
		StepsCompleted:  steps,
		StepsFailed:     m.stepsFailed.Load(),
		StepsSkipped:    m.stepsSkipped.Load(),
		AvgStepDuration: avg,
	}
}

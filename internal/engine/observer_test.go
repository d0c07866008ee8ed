package engine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/outpost-labs/scout/internal/engine"
)

func TestMetricsObserver(t *testing.T) {
	metrics := &engine.Metrics{}
	rec := &recorder{}
	steps := happySteps(rec)
	steps.CompanyResearch = step(rec, engine.StepCompanyResearch, nil, errors.New("model overloaded"))

	e, err := engine.New(steps, engine.Config{}, testLogger(), metrics)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}

	if _, err := e.Execute(context.Background(), engine.RunInput{
		Topic:       "zero trust adoption",
		Approach:    engine.ApproachCompanyLeads,
		CompanyName: "Contoso",
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	snap := metrics.Snapshot()

	if snap.RunsStarted != 1 || snap.RunsCompleted != 1 || snap.RunsFailed != 0 {
		t.Errorf("run counts: got %+v", snap)
	}
	if snap.RunsActive != 0 {
		t.Errorf("active runs: got %d, want 0", snap.RunsActive)
	}
	// company research fails, leads skip, cse and synthesis succeed
	if snap.StepsFailed != 1 {
		t.Errorf("failed steps: got %d, want 1", snap.StepsFailed)
	}
	if snap.StepsSkipped != 1 {
		t.Errorf("skipped steps: got %d, want 1", snap.StepsSkipped)
	}
	if snap.StepsCompleted != 2 {
		t.Errorf("completed steps: got %d, want 2", snap.StepsCompleted)
	}
}

func TestMetricsObserverFatalRun(t *testing.T) {
	metrics := &engine.Metrics{}
	rec := &recorder{}
	steps := happySteps(rec)
	steps.Synthesis = step(rec, engine.StepSynthesis, nil, errors.New("model refused"))

	e, err := engine.New(steps, engine.Config{}, testLogger(), metrics)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}

	if _, err := e.Execute(context.Background(), engine.RunInput{
		Topic:    "quantum networking",
		Approach: engine.ApproachTopicOnly,
	}); err == nil {
		t.Fatal("expected fatal run error")
	}

	snap := metrics.Snapshot()
	if snap.RunsFailed != 1 {
		t.Errorf("failed runs: got %d, want 1", snap.RunsFailed)
	}
	if snap.RunsCompleted != 0 {
		t.Errorf("completed runs: got %d, want 0", snap.RunsCompleted)
	}
}

type countingObserver struct {
	engine.NoopObserver

	mu     sync.Mutex
	starts int
}

func (c *countingObserver) OnRunStart(ctx context.Context, st *engine.RunState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.starts++
}

func TestCompositeObserverFansOut(t *testing.T) {
	first := &countingObserver{}
	second := &countingObserver{}
	composite := engine.NewCompositeObserver(first, nil, second)

	composite.OnRunStart(context.Background(), &engine.RunState{})

	if first.starts != 1 || second.starts != 1 {
		t.Errorf("fan out: got %d and %d, want 1 and 1", first.starts, second.starts)
	}
}

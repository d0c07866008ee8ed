package main

import (
	"context"

	"github.com/outpost-labs/scout/internal/config"
	"github.com/outpost-labs/scout/internal/cse"
	"github.com/outpost-labs/scout/internal/engine"
	"github.com/outpost-labs/scout/internal/infrastructure"
	"github.com/outpost-labs/scout/internal/research"
)

// buildEngine assembles the research pipeline: the Gemini client, the
// optional CSE client, the step table, and the engine with its observers.
func buildEngine(cfg *config.Config, infra *infrastructure.Infrastructure) (*engine.Engine, *engine.Metrics, error) {
	client, err := research.NewClient(context.Background(), cfg.Gemini.APIKey, infra.Logger)
	if err != nil {
		return nil, nil, err
	}

	rt := &research.Runtime{
		Client: client,
		Store:  infra.Storage,
		Config: cfg.Gemini.Research(),
		Logger: infra.Logger,
	}

	cseClient, err := buildCSE(cfg, infra)
	if err != nil {
		return nil, nil, err
	}

	steps := engine.Steps{
		TopicSearch:     research.SearchStep(rt),
		CompanyResearch: research.CompanyStep(rt),
		Leads:           research.LeadsStep(rt),
		CseSearch:       cse.Step(cseClient, infra.Logger),
		VideoAnalysis:   research.VideoStep(rt),
		Synthesis:       research.SynthesisStep(rt),
		Podcast:         research.PodcastStep(rt),
	}

	metrics := &engine.Metrics{}
	observer := engine.NewCompositeObserver(
		engine.NewLoggingObserver(infra.Logger),
		metrics,
	)

	eng, err := engine.New(steps, cfg.Engine.Engine(), infra.Logger, observer)
	if err != nil {
		return nil, nil, err
	}

	return eng, metrics, nil
}

// buildCSE returns nil when the custom search engine is not configured;
// the search step records empty contacts in that case.
func buildCSE(cfg *config.Config, infra *infrastructure.Infrastructure) (*cse.Client, error) {
	if !cfg.CSE.Enabled() {
		infra.Logger.Warn("cse not configured, linkedin search disabled")
		return nil, nil
	}
	return cse.New(context.Background(), &cfg.CSE, infra.Logger)
}

// Command scout executes a single research run from the command line and
// writes the projected output as JSON to stdout. Configuration comes from
// the same config.toml and SCOUT_* environment variables as the server;
// no database is required.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/outpost-labs/scout/internal/config"
	"github.com/outpost-labs/scout/internal/cse"
	"github.com/outpost-labs/scout/internal/engine"
	"github.com/outpost-labs/scout/internal/research"
	"github.com/outpost-labs/scout/pkg/lifecycle"
	"github.com/outpost-labs/scout/pkg/storage"
)

func main() {
	var (
		topic    = flag.String("topic", "", "Research topic (required)")
		approach = flag.String("approach", "topic_only", "Research approach: topic_only or topic_company_leads")
		company  = flag.String("company", "", "Target company for topic_company_leads")
		titles   = flag.String("titles", "", "Comma-separated job title areas for lead discovery")
		video    = flag.String("video", "", "Optional video URL to analyze")
		podcast  = flag.Bool("podcast", false, "Generate a podcast from the report")
		timeout  = flag.Duration("timeout", 30*time.Minute, "Overall run timeout")
	)
	flag.Parse()

	if *topic == "" {
		fmt.Fprintln(os.Stderr, "usage: scout -topic <topic> [-approach topic_company_leads -company <name>] [-titles a,b] [-video <url>] [-podcast]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	input := engine.RunInput{
		Topic:         *topic,
		Approach:      engine.Approach(*approach),
		CompanyName:   *company,
		TitleAreas:    splitTitles(*titles),
		VideoURL:      *video,
		CreatePodcast: *podcast,
	}

	if err := run(input, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(input engine.RunInput, timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	store, err := buildStorage(cfg, logger)
	if err != nil {
		return err
	}

	eng, err := buildEngine(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	out, err := eng.Execute(ctx, input)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// buildStorage initializes artifact storage when configured. The startup
// hook that prepares the container runs to completion before the run starts.
func buildStorage(cfg *config.Config, logger *slog.Logger) (storage.System, error) {
	if !cfg.Storage.Enabled() {
		logger.Warn("artifact storage not configured, reports will be returned inline")
		return nil, nil
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	lc := lifecycle.New()
	if err := store.Start(lc); err != nil {
		return nil, fmt.Errorf("storage start failed: %w", err)
	}
	lc.WaitForStartup()
	if err := lc.Err(); err != nil {
		return nil, err
	}

	return store, nil
}

func buildEngine(ctx context.Context, cfg *config.Config, store storage.System, logger *slog.Logger) (*engine.Engine, error) {
	client, err := research.NewClient(ctx, cfg.Gemini.APIKey, logger)
	if err != nil {
		return nil, err
	}

	rt := &research.Runtime{
		Client: client,
		Store:  store,
		Config: cfg.Gemini.Research(),
		Logger: logger,
	}

	var cseClient *cse.Client
	if cfg.CSE.Enabled() {
		cseClient, err = cse.New(ctx, &cfg.CSE, logger)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("cse not configured, linkedin search disabled")
	}

	steps := engine.Steps{
		TopicSearch:     research.SearchStep(rt),
		CompanyResearch: research.CompanyStep(rt),
		Leads:           research.LeadsStep(rt),
		CseSearch:       cse.Step(cseClient, logger),
		VideoAnalysis:   research.VideoStep(rt),
		Synthesis:       research.SynthesisStep(rt),
		Podcast:         research.PodcastStep(rt),
	}

	return engine.New(steps, cfg.Engine.Engine(), logger, engine.NewLoggingObserver(logger))
}

func splitTitles(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	titles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			titles = append(titles, p)
		}
	}
	return titles
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/outpost-labs/scout/internal/engine"
)

const (
	EnvEngineStepTimeout        = "SCOUT_ENGINE_STEP_TIMEOUT"
	EnvEngineParallelEnrichment = "SCOUT_ENGINE_PARALLEL_ENRICHMENT"
)

// EngineConfig tunes run execution: the default per-step timeout,
// per-step overrides keyed by step kind, and the optional concurrent
// enrichment on the company path.
type EngineConfig struct {
	StepTimeout        string            `toml:"step_timeout"`
	Timeouts           map[string]string `toml:"timeouts"`
	ParallelEnrichment bool              `toml:"parallel_enrichment"`
}

// Engine converts the section into the engine's execution config.
func (c *EngineConfig) Engine() engine.Config {
	cfg := engine.Config{
		ParallelEnrichment: c.ParallelEnrichment,
	}

	cfg.StepTimeout, _ = time.ParseDuration(c.StepTimeout)

	if len(c.Timeouts) > 0 {
		cfg.Timeouts = make(map[engine.StepKind]time.Duration, len(c.Timeouts))
		for kind, value := range c.Timeouts {
			d, _ := time.ParseDuration(value)
			cfg.Timeouts[engine.StepKind(kind)] = d
		}
	}

	return cfg
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *EngineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Timeout overrides merge
// per step kind; ParallelEnrichment always applies.
func (c *EngineConfig) Merge(overlay *EngineConfig) {
	c.ParallelEnrichment = overlay.ParallelEnrichment

	if overlay.StepTimeout != "" {
		c.StepTimeout = overlay.StepTimeout
	}
	if len(overlay.Timeouts) > 0 {
		if c.Timeouts == nil {
			c.Timeouts = make(map[string]string, len(overlay.Timeouts))
		}
		for kind, value := range overlay.Timeouts {
			c.Timeouts[kind] = value
		}
	}
}

func (c *EngineConfig) loadDefaults() {
	if c.StepTimeout == "" {
		c.StepTimeout = "2m"
	}
	if c.Timeouts == nil {
		// Synthesis reads every upstream artifact and podcast generation
		// makes two model calls; both need more headroom than research.
		c.Timeouts = map[string]string{
			string(engine.StepSynthesis): "5m",
			string(engine.StepPodcast):   "5m",
			string(engine.StepCseSearch): "30s",
		}
	}
}

func (c *EngineConfig) loadEnv() {
	if v := os.Getenv(EnvEngineStepTimeout); v != "" {
		c.StepTimeout = v
	}
	if v := os.Getenv(EnvEngineParallelEnrichment); v != "" {
		c.ParallelEnrichment = v == "true" || v == "1"
	}
}

func (c *EngineConfig) validate() error {
	if _, err := time.ParseDuration(c.StepTimeout); err != nil {
		return fmt.Errorf("invalid step_timeout: %w", err)
	}

	valid := map[string]bool{
		string(engine.StepTopicSearch):     true,
		string(engine.StepCompanyResearch): true,
		string(engine.StepLeads):           true,
		string(engine.StepCseSearch):       true,
		string(engine.StepVideoAnalysis):   true,
		string(engine.StepSynthesis):       true,
		string(engine.StepPodcast):         true,
	}

	for kind, value := range c.Timeouts {
		if !valid[kind] {
			return fmt.Errorf("unknown step kind in timeouts: %s", kind)
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout for %s: %w", kind, err)
		}
	}
	return nil
}

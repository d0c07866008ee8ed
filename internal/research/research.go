// Package research implements the Gemini-backed pipeline steps: grounded
// topic and company research, lead identification, video analysis, report
// synthesis, and podcast generation. Each step constructor closes over a
// Runtime and returns an engine.StepFunc; steps read run state and return
// updates without writing state themselves.
package research

import (
	"log/slog"

	"github.com/outpost-labs/scout/pkg/storage"
)

// Config selects models, temperatures, and voices for the research steps.
type Config struct {
	SearchModel          string
	SearchTemperature    float32
	SynthesisModel       string
	SynthesisTemperature float32
	VideoModel           string
	LeadModel            string
	LeadTemperature      float32
	ScriptTemperature    float32
	TTSModel             string
	MikeVoice            string
	SarahVoice           string
	AudioChannels        int
	AudioRate            int
	AudioDepth           int
}

// Runtime bundles the dependencies research steps require. Store may be
// nil, in which case reports stay inline and podcast audio is discarded
// after script generation.
type Runtime struct {
	Client *Client
	Store  storage.System
	Config Config
	Logger *slog.Logger
}

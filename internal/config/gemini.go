package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/outpost-labs/scout/internal/research"
)

// GEMINI_API_KEY is honored as a fallback for SCOUT_GEMINI_API_KEY
// because the Gemini SDK and earlier deployments of this pipeline both
// read it.
const (
	EnvGeminiAPIKey         = "SCOUT_GEMINI_API_KEY"
	EnvGeminiAPIKeyFallback = "GEMINI_API_KEY"
)

var geminiEnv = &GeminiEnv{
	APIKey:         EnvGeminiAPIKey,
	SearchModel:    "SCOUT_GEMINI_SEARCH_MODEL",
	SynthesisModel: "SCOUT_GEMINI_SYNTHESIS_MODEL",
	VideoModel:     "SCOUT_GEMINI_VIDEO_MODEL",
	LeadModel:      "SCOUT_GEMINI_LEAD_MODEL",
	TTSModel:       "SCOUT_GEMINI_TTS_MODEL",
}

// GeminiConfig selects the models, temperatures, and podcast voices used
// by the research steps.
type GeminiConfig struct {
	APIKey               string  `toml:"api_key"`
	SearchModel          string  `toml:"search_model"`
	SynthesisModel       string  `toml:"synthesis_model"`
	VideoModel           string  `toml:"video_model"`
	LeadModel            string  `toml:"lead_model"`
	TTSModel             string  `toml:"tts_model"`
	SearchTemperature    float32 `toml:"search_temperature"`
	SynthesisTemperature float32 `toml:"synthesis_temperature"`
	LeadTemperature      float32 `toml:"lead_temperature"`
	ScriptTemperature    float32 `toml:"script_temperature"`
	MikeVoice            string  `toml:"mike_voice"`
	SarahVoice           string  `toml:"sarah_voice"`
}

// GeminiEnv maps config fields to environment variable names for
// override injection.
type GeminiEnv struct {
	APIKey         string
	SearchModel    string
	SynthesisModel string
	VideoModel     string
	LeadModel      string
	TTSModel       string
}

// Research converts the section into the research step configuration.
// Podcast audio parameters are fixed by the TTS API contract (mono PCM,
// 24 kHz, 16-bit) rather than configured.
func (c *GeminiConfig) Research() research.Config {
	return research.Config{
		SearchModel:          c.SearchModel,
		SearchTemperature:    c.SearchTemperature,
		SynthesisModel:       c.SynthesisModel,
		SynthesisTemperature: c.SynthesisTemperature,
		VideoModel:           c.VideoModel,
		LeadModel:            c.LeadModel,
		LeadTemperature:      c.LeadTemperature,
		ScriptTemperature:    c.ScriptTemperature,
		TTSModel:             c.TTSModel,
		MikeVoice:            c.MikeVoice,
		SarahVoice:           c.SarahVoice,
		AudioChannels:        1,
		AudioRate:            24000,
		AudioDepth:           2,
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *GeminiConfig) Finalize(env *GeminiEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *GeminiConfig) Merge(overlay *GeminiConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.SearchModel != "" {
		c.SearchModel = overlay.SearchModel
	}
	if overlay.SynthesisModel != "" {
		c.SynthesisModel = overlay.SynthesisModel
	}
	if overlay.VideoModel != "" {
		c.VideoModel = overlay.VideoModel
	}
	if overlay.LeadModel != "" {
		c.LeadModel = overlay.LeadModel
	}
	if overlay.TTSModel != "" {
		c.TTSModel = overlay.TTSModel
	}
	if overlay.SearchTemperature != 0 {
		c.SearchTemperature = overlay.SearchTemperature
	}
	if overlay.SynthesisTemperature != 0 {
		c.SynthesisTemperature = overlay.SynthesisTemperature
	}
	if overlay.LeadTemperature != 0 {
		c.LeadTemperature = overlay.LeadTemperature
	}
	if overlay.ScriptTemperature != 0 {
		c.ScriptTemperature = overlay.ScriptTemperature
	}
	if overlay.MikeVoice != "" {
		c.MikeVoice = overlay.MikeVoice
	}
	if overlay.SarahVoice != "" {
		c.SarahVoice = overlay.SarahVoice
	}
}

func (c *GeminiConfig) loadDefaults() {
	if c.SearchModel == "" {
		c.SearchModel = "gemini-2.5-flash"
	}
	if c.SynthesisModel == "" {
		c.SynthesisModel = "gemini-2.5-flash"
	}
	if c.VideoModel == "" {
		c.VideoModel = "gemini-2.5-flash"
	}
	if c.LeadModel == "" {
		c.LeadModel = "gemini-2.5-flash"
	}
	if c.TTSModel == "" {
		c.TTSModel = "gemini-2.5-flash-preview-tts"
	}
	if c.ScriptTemperature == 0 {
		c.ScriptTemperature = 0.7
	}
	if c.MikeVoice == "" {
		c.MikeVoice = "Puck"
	}
	if c.SarahVoice == "" {
		c.SarahVoice = "Kore"
	}
}

func (c *GeminiConfig) loadEnv(env *GeminiEnv) {
	if env.APIKey != "" {
		if v := os.Getenv(EnvGeminiAPIKeyFallback); v != "" && c.APIKey == "" {
			c.APIKey = v
		}
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}

	setModel := func(envVar string, target *string) {
		if envVar == "" {
			return
		}
		if v := os.Getenv(envVar); v != "" {
			*target = v
		}
	}

	setModel(env.SearchModel, &c.SearchModel)
	setModel(env.SynthesisModel, &c.SynthesisModel)
	setModel(env.VideoModel, &c.VideoModel)
	setModel(env.LeadModel, &c.LeadModel)
	setModel(env.TTSModel, &c.TTSModel)
}

func (c *GeminiConfig) validate() error {
	for name, temp := range map[string]float32{
		"search_temperature":    c.SearchTemperature,
		"synthesis_temperature": c.SynthesisTemperature,
		"lead_temperature":      c.LeadTemperature,
		"script_temperature":    c.ScriptTemperature,
	} {
		if temp < 0 || temp > 2 {
			return fmt.Errorf("%s must be between 0 and 2, got %s",
				name, strconv.FormatFloat(float64(temp), 'f', -1, 32))
		}
	}
	return nil
}

package research

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/outpost-labs/scout/internal/engine"
)

// SearchStep researches the run topic with Google Search grounding and
// records the overview text plus the web sources that informed it.
func SearchStep(rt *Runtime) engine.StepFunc {
	return func(ctx context.Context, st *engine.RunState) (*engine.Update, error) {
		prompt := fmt.Sprintf("Research this topic and give me an overview: %s", st.Input.Topic)

		temp := rt.Config.SearchTemperature
		resp, err := rt.Client.generate(ctx, rt.Config.SearchModel, textContent(prompt), &genai.GenerateContentConfig{
			Temperature: &temp,
			Tools:       []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		})
		if err != nil {
			return nil, fmt.Errorf("topic search: %w", err)
		}

		text := responseText(resp)
		if text == "" {
			return nil, fmt.Errorf("topic search: %w", ErrEmptyResponse)
		}

		sources := groundingSources(resp)
		rt.Logger.InfoContext(ctx, "topic search complete",
			"topic", st.Input.Topic,
			"chars", len(text),
			"sources", len(sources),
		)

		return &engine.Update{SearchText: &text, Sources: &sources}, nil
	}
}

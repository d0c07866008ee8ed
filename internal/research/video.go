package research

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/outpost-labs/scout/internal/engine"
)

// VideoStep analyzes the run's video through the lens of the topic. The
// video is passed by URI; Gemini fetches and processes it server side.
func VideoStep(rt *Runtime) engine.StepFunc {
	return func(ctx context.Context, st *engine.RunState) (*engine.Update, error) {
		contents := []*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{FileData: &genai.FileData{FileURI: st.Input.VideoURL, MIMEType: "video/*"}},
				{Text: fmt.Sprintf("Based on the video content, give me an overview of this topic: %s", st.Input.Topic)},
			},
		}}

		resp, err := rt.Client.generate(ctx, rt.Config.VideoModel, contents, nil)
		if err != nil {
			return nil, fmt.Errorf("video analysis: %w", err)
		}

		text := responseText(resp)
		if text == "" {
			return nil, fmt.Errorf("video analysis: %w", ErrEmptyResponse)
		}

		rt.Logger.InfoContext(ctx, "video analysis complete",
			"url", st.Input.VideoURL,
			"chars", len(text),
		)

		return &engine.Update{VideoAnalysis: &text}, nil
	}
}

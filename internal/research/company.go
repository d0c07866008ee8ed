package research

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/outpost-labs/scout/internal/engine"
)

// overviewMarker separates topic-specific findings from the general
// company overview in the model response. The prompt instructs the model
// to emit it verbatim.
const overviewMarker = "General Company Information:"

// CompanyStep researches the company through the lens of the run topic.
// The response is split into a company-specific section and a general
// overview; when the marker is missing the whole response is treated as
// company-specific and the overview stays empty.
func CompanyStep(rt *Runtime) engine.StepFunc {
	return func(ctx context.Context, st *engine.RunState) (*engine.Update, error) {
		prompt := companyPrompt(st.Input.Topic, st.Input.CompanyName)

		temp := rt.Config.SearchTemperature
		resp, err := rt.Client.generate(ctx, rt.Config.SearchModel, textContent(prompt), &genai.GenerateContentConfig{
			Temperature: &temp,
			Tools:       []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		})
		if err != nil {
			return nil, fmt.Errorf("company research: %w", err)
		}

		text := responseText(resp)
		if text == "" {
			return nil, fmt.Errorf("company research: %w", ErrEmptyResponse)
		}

		specific, overview, found := splitCompanyResearch(text)
		if !found {
			rt.Logger.WarnContext(ctx, "company overview marker missing",
				"company", st.Input.CompanyName,
			)
		}

		sources := groundingSources(resp)
		rt.Logger.InfoContext(ctx, "company research complete",
			"company", st.Input.CompanyName,
			"chars", len(text),
			"sources", len(sources),
		)

		return &engine.Update{
			CompanyResearch: &specific,
			CompanyOverview: &overview,
			Sources:         &sources,
		}, nil
	}
}

func companyPrompt(topic, company string) string {
	return fmt.Sprintf(`Research the company %s in the context of the following topic: %s

First, describe how %s specifically engages with this topic. Cover current
initiatives, products, partnerships, hiring signals, and public statements.

Then, starting on a new line that reads exactly %q, give a general overview
of %s: industry, size, headquarters, key business lines, and recent
developments.`, company, topic, company, overviewMarker, company)
}

// splitCompanyResearch divides the response at the overview marker. The
// boolean reports whether the marker was present.
func splitCompanyResearch(text string) (specific, overview string, found bool) {
	before, after, found := strings.Cut(text, overviewMarker)
	if !found {
		return strings.TrimSpace(text), "", false
	}
	return strings.TrimSpace(before), strings.TrimSpace(after), true
}

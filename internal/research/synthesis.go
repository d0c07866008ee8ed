package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/outpost-labs/scout/internal/engine"
	"github.com/outpost-labs/scout/pkg/storage"
)

// SynthesisStep combines everything the earlier steps collected into an
// academic-style synthesis, renders the report markdown, and publishes it
// to artifact storage. Publishing failures degrade to an inline report;
// only a failed model call fails the step.
func SynthesisStep(rt *Runtime) engine.StepFunc {
	return func(ctx context.Context, st *engine.RunState) (*engine.Update, error) {
		prompt := synthesisPrompt(st)

		temp := rt.Config.SynthesisTemperature
		resp, err := rt.Client.generate(ctx, rt.Config.SynthesisModel, textContent(prompt), &genai.GenerateContentConfig{
			Temperature: &temp,
		})
		if err != nil {
			return nil, fmt.Errorf("report synthesis: %w", err)
		}

		synthesis := responseText(resp)
		if synthesis == "" {
			return nil, fmt.Errorf("report synthesis: %w", ErrEmptyResponse)
		}

		report := buildReport(st.Input.Topic, st.Input.VideoURL, synthesis, st.Sources)
		update := &engine.Update{Report: &report}

		url, err := rt.publish(ctx, reportKey(st.Input.Topic), []byte(report), "text/markdown")
		switch {
		case err == nil:
			update.ReportURL = &url
		case errors.Is(err, storage.ErrNotConfigured):
			rt.Logger.InfoContext(ctx, "storage not configured, returning report inline")
		default:
			rt.Logger.WarnContext(ctx, "report publish failed, returning report inline", "error", err)
		}

		rt.Logger.InfoContext(ctx, "report synthesis complete",
			"topic", st.Input.Topic,
			"chars", len(report),
			"published", update.ReportURL != nil,
		)

		return update, nil
	}
}

// synthesisPrompt assembles the literature-review instructions and the
// input materials. Sections are included only when the corresponding
// step produced text, so a degraded run still yields a coherent prompt.
func synthesisPrompt(st *engine.RunState) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `Create a comprehensive research synthesis in the style of an academic
literature review on the topic: %s

INPUT MATERIALS:
`, st.Input.Topic)

	if st.SearchText != "" {
		fmt.Fprintf(&sb, "\n=== SEARCH RESULTS ===\n%s\n", st.SearchText)
	}
	if st.VideoAnalysis != "" {
		fmt.Fprintf(&sb, "\n=== VIDEO CONTENT ===\n%s\n", st.VideoAnalysis)
	}

	company := st.Input.CompanyName
	if st.CompanyResearch != "" {
		fmt.Fprintf(&sb, "\n=== COMPANY-SPECIFIC TOPIC RESEARCH (%s) ===\n%s\n", company, st.CompanyResearch)
	}
	if st.CompanyOverview != "" {
		fmt.Fprintf(&sb, "\n=== GENERAL COMPANY INFORMATION (%s) ===\n%s\n", company, st.CompanyOverview)
	}
	if len(st.Opportunities) > 0 {
		if leads, err := json.MarshalIndent(st.Opportunities, "", "  "); err == nil {
			fmt.Fprintf(&sb, "\n=== IDENTIFIED LEADS AT %s ===\n%s\n", company, leads)
		}
	}

	sb.WriteString(`
Structure the synthesis as follows:

1. Title: a descriptive academic title for the research topic.
2. Introduction: frame the topic, its significance, and the scope of the
   materials reviewed.
3. Thematic Analysis: organize the findings into themes rather than
   walking through sources one by one. Compare and contrast what the
   materials say within each theme.
4. Discussion: examine implications, tensions between sources, and open
   questions the materials leave unresolved.
5. Conclusion: summarize the principal findings and their significance.

Write in a formal, scholarly tone. Produce at least six to eight
well-developed paragraphs. Synthesize across the materials rather than
summarizing them in sequence.`)

	return sb.String()
}

package research

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/outpost-labs/scout/internal/engine"
	"github.com/outpost-labs/scout/pkg/formatting"
)

// LeadsStep identifies business opportunities and the people behind them
// at the run's company. The model is asked for a strict JSON array; the
// parsed opportunities are normalized before they reach run state.
func LeadsStep(rt *Runtime) engine.StepFunc {
	return func(ctx context.Context, st *engine.RunState) (*engine.Update, error) {
		prompt := leadPrompt(st.Input.Topic, st.Input.CompanyName, st.Input.TitleAreas, st.CompanyResearch)

		temp := rt.Config.LeadTemperature
		resp, err := rt.Client.generate(ctx, rt.Config.LeadModel, textContent(prompt), &genai.GenerateContentConfig{
			Temperature: &temp,
			Tools:       []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		})
		if err != nil {
			return nil, fmt.Errorf("lead identification: %w", err)
		}

		text := responseText(resp)
		if text == "" {
			return nil, fmt.Errorf("lead identification: %w", ErrEmptyResponse)
		}

		leads, err := formatting.Parse[[]engine.Opportunity](text)
		if err != nil {
			return nil, fmt.Errorf("lead identification: %w", err)
		}

		leads = normalizeLeads(leads)
		rt.Logger.InfoContext(ctx, "lead identification complete",
			"company", st.Input.CompanyName,
			"opportunities", len(leads),
		)

		return &engine.Update{Opportunities: &leads}, nil
	}
}

func leadPrompt(topic, company string, titleAreas []string, companyResearch string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `Identify concrete business opportunities at %s related to the topic: %s

For each opportunity, name the departments likely to own it, the people who
would serve as contact points, and the decision makers who would approve it.`, company, topic)

	if len(titleAreas) > 0 {
		fmt.Fprintf(&sb, "\n\nPrioritize contacts holding titles in these areas: %s.", strings.Join(titleAreas, ", "))
	}
	if companyResearch != "" {
		fmt.Fprintf(&sb, "\n\nCompany research to draw on:\n\n%s", companyResearch)
	}

	sb.WriteString(`

Respond with a JSON array only. No prose before or after. Each element must
have this shape:

[
  {
    "name": "opportunity name",
    "description": "what the opportunity is and why it fits",
    "relevant_departments": ["department"],
    "contact_points": [
      {
        "name": "person name",
        "title": "job title",
        "department": "department",
        "linkedin_url": "https://linkedin.com/in/... or omit",
        "relevance": "why this person matters for the opportunity"
      }
    ],
    "decision_makers": [
      {
        "name": "person name",
        "title": "job title",
        "rationale": "why this person decides"
      }
    ]
  }
]`)
	return sb.String()
}

// normalizeLeads deduplicates departments per opportunity while keeping
// first-seen order, and guarantees a non-nil slice so a valid empty
// response still marks the step as having produced data.
func normalizeLeads(leads []engine.Opportunity) []engine.Opportunity {
	if leads == nil {
		return []engine.Opportunity{}
	}

	for i := range leads {
		seen := make(map[string]bool, len(leads[i].Departments))
		deduped := leads[i].Departments[:0]
		for _, dept := range leads[i].Departments {
			key := strings.ToLower(strings.TrimSpace(dept))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			deduped = append(deduped, dept)
		}
		leads[i].Departments = deduped
	}
	return leads
}

package research

import (
	"strings"
	"testing"

	"github.com/outpost-labs/scout/internal/engine"
)

func TestSynthesisPromptCompanyRun(t *testing.T) {
	st := &engine.RunState{
		Input: engine.RunInput{
			Topic:       "Edge AI",
			Approach:    engine.ApproachCompanyLeads,
			CompanyName: "Acme",
		},
		CompanyResearch: "Acme ships edge devices.",
		CompanyOverview: "Acme is a manufacturer.",
		VideoAnalysis:   "The video covers deployment patterns.",
		Opportunities: []engine.Opportunity{
			{Name: "Platform modernization", Description: "Refresh the fleet."},
		},
	}

	prompt := synthesisPrompt(st)

	for _, want := range []string{
		"INPUT MATERIALS:",
		"=== VIDEO CONTENT ===",
		"=== COMPANY-SPECIFIC TOPIC RESEARCH (Acme) ===",
		"=== GENERAL COMPANY INFORMATION (Acme) ===",
		"=== IDENTIFIED LEADS AT Acme ===",
		"Platform modernization",
		"Thematic Analysis",
		"formal, scholarly tone",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if strings.Contains(prompt, "=== SEARCH RESULTS ===") {
		t.Error("prompt should omit search section when topic search did not run")
	}
}

func TestSynthesisPromptTopicRun(t *testing.T) {
	st := &engine.RunState{
		Input:      engine.RunInput{Topic: "Edge AI", Approach: engine.ApproachTopicOnly},
		SearchText: "Edge AI moves inference to devices.",
	}

	prompt := synthesisPrompt(st)

	if !strings.Contains(prompt, "=== SEARCH RESULTS ===") {
		t.Error("prompt missing search section")
	}
	for _, unwanted := range []string{
		"=== VIDEO CONTENT ===",
		"=== COMPANY-SPECIFIC TOPIC RESEARCH",
		"=== GENERAL COMPANY INFORMATION",
		"=== IDENTIFIED LEADS",
	} {
		if strings.Contains(prompt, unwanted) {
			t.Errorf("prompt should omit %q for a topic-only run", unwanted)
		}
	}
}

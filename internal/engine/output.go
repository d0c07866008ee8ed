package engine

import "github.com/google/uuid"

// Output is the projection of a completed run. Branches that never ran
// project as null, not as empty values: a null identified_opportunities
// means lead identification was never attempted, while an empty array
// means it ran and found nothing. Errors and Skipped always serialize,
// empty or not.
type Output struct {
	RunID         uuid.UUID     `json:"run_id"`
	Topic         string        `json:"topic"`
	Report        string        `json:"report"`
	ReportURL     *string       `json:"report_url"`
	Opportunities []Opportunity `json:"identified_opportunities"`
	Contacts      []CseContact  `json:"linkedin_contacts"`
	PodcastScript *string       `json:"podcast_script"`
	PodcastURL    *string       `json:"podcast_url"`
	Errors        []StepError   `json:"errors"`
	Skipped       []StepKind    `json:"skipped"`
}

// Project builds the output for a finished run. It reads state without
// modifying it and yields the same result however often it is called.
func Project(st *RunState) *Output {
	out := &Output{
		RunID:         st.ID,
		Topic:         st.Input.Topic,
		Report:        st.Report,
		ReportURL:     optional(st.ReportURL),
		PodcastScript: optional(st.PodcastScript),
		PodcastURL:    optional(st.PodcastURL),
		Errors:        make([]StepError, len(st.Errors)),
		Skipped:       make([]StepKind, len(st.Skipped)),
	}

	copy(out.Errors, st.Errors)
	copy(out.Skipped, st.Skipped)

	if st.Opportunities != nil {
		out.Opportunities = make([]Opportunity, len(st.Opportunities))
		copy(out.Opportunities, st.Opportunities)
	}

	if st.Contacts != nil {
		out.Contacts = make([]CseContact, len(st.Contacts))
		copy(out.Contacts, st.Contacts)
	}

	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

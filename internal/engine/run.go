package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Approach selects the research path for a run.
type Approach string

// Research approaches.
const (
	ApproachTopicOnly    Approach = "topic_only"
	ApproachCompanyLeads Approach = "topic_company_leads"
)

// StepKind identifies a pipeline step.
type StepKind string

// Pipeline steps.
const (
	StepTopicSearch     StepKind = "topic_search"
	StepCompanyResearch StepKind = "company_topic_research"
	StepLeads           StepKind = "lead_identification"
	StepCseSearch       StepKind = "linkedin_cse_search"
	StepVideoAnalysis   StepKind = "video_analysis"
	StepSynthesis       StepKind = "report_synthesis"
	StepPodcast         StepKind = "podcast_generation"
)

// RunInput is the caller-supplied request for a single research run.
type RunInput struct {
	Topic         string   `json:"topic"`
	Approach      Approach `json:"research_approach"`
	CompanyName   string   `json:"company_name,omitempty"`
	TitleAreas    []string `json:"title_areas,omitempty"`
	VideoURL      string   `json:"video_url,omitempty"`
	CreatePodcast bool     `json:"create_podcast"`
}

// Normalize trims whitespace and applies defaults. An empty approach
// resolves to topic-only research.
func (in *RunInput) Normalize() {
	in.Topic = strings.TrimSpace(in.Topic)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.VideoURL = strings.TrimSpace(in.VideoURL)

	if in.Approach == "" {
		in.Approach = ApproachTopicOnly
	}

	titles := make([]string, 0, len(in.TitleAreas))
	for _, t := range in.TitleAreas {
		if t = strings.TrimSpace(t); t != "" {
			titles = append(titles, t)
		}
	}
	in.TitleAreas = titles
}

// Validate checks the input against the selected approach. Company research
// requires a company name; title areas remain optional.
func (in RunInput) Validate() error {
	if in.Topic == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrTopicRequired)
	}

	switch in.Approach {
	case ApproachTopicOnly:
	case ApproachCompanyLeads:
		if in.CompanyName == "" {
			return fmt.Errorf("%w: %w", ErrInvalidInput, ErrCompanyRequired)
		}
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidInput, ErrUnknownApproach, in.Approach)
	}

	return nil
}

// RunState carries everything accumulated during a single run. Research
// fields are written at most once, through apply; steps read state but
// never write it. Errors and Skipped are append-only. Nil collection
// fields mean the producing step never ran; empty non-nil collections
// mean it ran and found nothing.
type RunState struct {
	ID        uuid.UUID `json:"id"`
	Input     RunInput  `json:"input"`
	StartedAt time.Time `json:"started_at"`

	SearchText      string        `json:"search_text,omitempty"`
	Sources         []string      `json:"sources,omitempty"`
	CompanyResearch string        `json:"company_research_text,omitempty"`
	CompanyOverview string        `json:"company_overview_text,omitempty"`
	Opportunities   []Opportunity `json:"identified_opportunities,omitempty"`
	Contacts        []CseContact  `json:"linkedin_contacts,omitempty"`
	VideoAnalysis   string        `json:"video_analysis_text,omitempty"`
	Report          string        `json:"report,omitempty"`
	ReportURL       string        `json:"report_url,omitempty"`
	PodcastScript   string        `json:"podcast_script,omitempty"`
	PodcastURL      string        `json:"podcast_url,omitempty"`

	Errors  []StepError `json:"errors"`
	Skipped []StepKind  `json:"skipped"`
}

// NewRunState initializes run state for a normalized input.
func NewRunState(input RunInput) *RunState {
	return &RunState{
		ID:        uuid.New(),
		Input:     input,
		StartedAt: time.Now().UTC(),
	}
}

// StepFailed reports whether the given step recorded an error.
func (st *RunState) StepFailed(kind StepKind) bool {
	for _, e := range st.Errors {
		if e.Step == kind {
			return true
		}
	}
	return false
}

// StepSkipped reports whether the given step was skipped.
func (st *RunState) StepSkipped(kind StepKind) bool {
	for _, k := range st.Skipped {
		if k == kind {
			return true
		}
	}
	return false
}

func (st *RunState) recordError(kind StepKind, fatal bool, err error) {
	st.Errors = append(st.Errors, StepError{
		Step:    kind,
		Message: err.Error(),
		Fatal:   fatal,
	})
}

func (st *RunState) recordSkip(kind StepKind) {
	st.Skipped = append(st.Skipped, kind)
}

// Update is a partial write-set produced by a step. Pointer fields
// distinguish "not produced" from "produced empty"; only non-nil fields
// are applied, and each may be applied once per run.
type Update struct {
	SearchText      *string
	Sources         *[]string
	CompanyResearch *string
	CompanyOverview *string
	Opportunities   *[]Opportunity
	Contacts        *[]CseContact
	VideoAnalysis   *string
	Report          *string
	ReportURL       *string
	PodcastScript   *string
	PodcastURL      *string
}

func (st *RunState) apply(u *Update) error {
	if u == nil {
		return nil
	}

	if u.SearchText != nil {
		if st.SearchText != "" {
			return fmt.Errorf("%w: search_text", ErrFieldConflict)
		}
		st.SearchText = *u.SearchText
	}

	if u.Sources != nil {
		if st.Sources != nil {
			return fmt.Errorf("%w: sources", ErrFieldConflict)
		}
		st.Sources = *u.Sources
	}

	if u.CompanyResearch != nil {
		if st.CompanyResearch != "" {
			return fmt.Errorf("%w: company_research_text", ErrFieldConflict)
		}
		st.CompanyResearch = *u.CompanyResearch
	}

	if u.CompanyOverview != nil {
		if st.CompanyOverview != "" {
			return fmt.Errorf("%w: company_overview_text", ErrFieldConflict)
		}
		st.CompanyOverview = *u.CompanyOverview
	}

	if u.Opportunities != nil {
		if st.Opportunities != nil {
			return fmt.Errorf("%w: identified_opportunities", ErrFieldConflict)
		}
		st.Opportunities = *u.Opportunities
	}

	if u.Contacts != nil {
		if st.Contacts != nil {
			return fmt.Errorf("%w: linkedin_contacts", ErrFieldConflict)
		}
		st.Contacts = *u.Contacts
	}

	if u.VideoAnalysis != nil {
		if st.VideoAnalysis != "" {
			return fmt.Errorf("%w: video_analysis_text", ErrFieldConflict)
		}
		st.VideoAnalysis = *u.VideoAnalysis
	}

	if u.Report != nil {
		if st.Report != "" {
			return fmt.Errorf("%w: report", ErrFieldConflict)
		}
		st.Report = *u.Report
	}

	if u.ReportURL != nil {
		if st.ReportURL != "" {
			return fmt.Errorf("%w: report_url", ErrFieldConflict)
		}
		st.ReportURL = *u.ReportURL
	}

	if u.PodcastScript != nil {
		if st.PodcastScript != "" {
			return fmt.Errorf("%w: podcast_script", ErrFieldConflict)
		}
		st.PodcastScript = *u.PodcastScript
	}

	if u.PodcastURL != nil {
		if st.PodcastURL != "" {
			return fmt.Errorf("%w: podcast_url", ErrFieldConflict)
		}
		st.PodcastURL = *u.PodcastURL
	}

	return nil
}

package engine

import (
	"context"
	"fmt"
)

// StepFunc executes one pipeline step. Implementations read the run state
// and return an Update describing what they produced; they never write
// state directly. Collaborator configuration is bound when the step is
// constructed, so the function itself stays pure with respect to state.
type StepFunc func(ctx context.Context, st *RunState) (*Update, error)

// Steps binds an implementation to every pipeline step. All fields are
// required; New rejects an incomplete set.
type Steps struct {
	TopicSearch     StepFunc
	CompanyResearch StepFunc
	Leads           StepFunc
	CseSearch       StepFunc
	VideoAnalysis   StepFunc
	Synthesis       StepFunc
	Podcast         StepFunc
}

func (s Steps) validate() error {
	required := []struct {
		kind StepKind
		fn   StepFunc
	}{
		{StepTopicSearch, s.TopicSearch},
		{StepCompanyResearch, s.CompanyResearch},
		{StepLeads, s.Leads},
		{StepCseSearch, s.CseSearch},
		{StepVideoAnalysis, s.VideoAnalysis},
		{StepSynthesis, s.Synthesis},
		{StepPodcast, s.Podcast},
	}

	for _, r := range required {
		if r.fn == nil {
			return fmt.Errorf("%w: %s", ErrStepMissing, r.kind)
		}
	}

	return nil
}

func (s Steps) lookup(kind StepKind) StepFunc {
	switch kind {
	case StepTopicSearch:
		return s.TopicSearch
	case StepCompanyResearch:
		return s.CompanyResearch
	case StepLeads:
		return s.Leads
	case StepCseSearch:
		return s.CseSearch
	case StepVideoAnalysis:
		return s.VideoAnalysis
	case StepSynthesis:
		return s.Synthesis
	case StepPodcast:
		return s.Podcast
	default:
		return nil
	}
}

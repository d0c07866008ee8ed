package engine_test

import (
	"testing"

	"github.com/outpost-labs/scout/internal/engine"
)

func TestPathRouter(t *testing.T) {
	router := engine.PathRouter()

	tests := []struct {
		name     string
		approach engine.Approach
		want     engine.Decision
	}{
		{"topic only", engine.ApproachTopicOnly, engine.DecideTopicSearch},
		{"company leads", engine.ApproachCompanyLeads, engine.DecideCompanyResearch},
		{"unset approach falls back", "", engine.DecideTopicSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &engine.RunState{Input: engine.RunInput{Approach: tt.approach}}
			if got := router.Decide(st); got != tt.want {
				t.Errorf("decision: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestVideoRouter(t *testing.T) {
	router := engine.VideoRouter()

	tests := []struct {
		name     string
		videoURL string
		want     engine.Decision
	}{
		{"with video url", "https://youtube.com/watch?v=abc123", engine.DecideVideoAnalysis},
		{"without video url", "", engine.DecideSynthesis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &engine.RunState{Input: engine.RunInput{VideoURL: tt.videoURL}}
			if got := router.Decide(st); got != tt.want {
				t.Errorf("decision: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPodcastRouter(t *testing.T) {
	router := engine.PodcastRouter()

	tests := []struct {
		name    string
		podcast bool
		report  string
		want    engine.Decision
	}{
		{"requested with report", true, "# Research Report: AI", engine.DecidePodcast},
		{"requested without report", true, "", engine.DecideEnd},
		{"not requested", false, "# Research Report: AI", engine.DecideEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &engine.RunState{
				Input:  engine.RunInput{CreatePodcast: tt.podcast},
				Report: tt.report,
			}
			if got := router.Decide(st); got != tt.want {
				t.Errorf("decision: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRouterFirstMatchWins(t *testing.T) {
	router := engine.NewRouter([]engine.Route{
		{Name: "first", When: func(*engine.RunState) bool { return true }, Then: engine.DecideTopicSearch},
		{Name: "second", When: func(*engine.RunState) bool { return true }, Then: engine.DecideEnd},
	}, engine.DecideSynthesis)

	if got := router.Decide(&engine.RunState{}); got != engine.DecideTopicSearch {
		t.Errorf("decision: got %s, want %s", got, engine.DecideTopicSearch)
	}
}

func TestRouterFallback(t *testing.T) {
	router := engine.NewRouter(nil, engine.DecideEnd)

	if got := router.Decide(&engine.RunState{}); got != engine.DecideEnd {
		t.Errorf("decision: got %s, want %s", got, engine.DecideEnd)
	}
}

package research

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"
)

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: parts}},
		},
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{
			name: "joins text parts",
			resp: textResponse(&genai.Part{Text: "first "}, &genai.Part{Text: "second"}),
			want: "first second",
		},
		{
			name: "trims whitespace",
			resp: textResponse(&genai.Part{Text: "\n  body  \n"}),
			want: "body",
		},
		{
			name: "skips non-text parts",
			resp: textResponse(&genai.Part{InlineData: &genai.Blob{Data: []byte{1}}}, &genai.Part{Text: "body"}),
			want: "body",
		},
		{
			name: "nil response",
			resp: nil,
			want: "",
		},
		{
			name: "no candidates",
			resp: &genai.GenerateContentResponse{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := responseText(tt.resp); got != tt.want {
				t.Errorf("responseText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGroundingSources(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{Title: "Example", URI: "https://example.com"}},
					{},
					{Web: &genai.GroundingChunkWeb{URI: "https://no-title.example.com"}},
				},
			},
		}},
	}

	got := groundingSources(resp)

	want := []string{
		"1. Example\n   https://example.com",
		"2. Untitled Source\n   https://no-title.example.com",
	}
	if len(got) != len(want) {
		t.Fatalf("sources = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sources[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGroundingSourcesNoMetadata(t *testing.T) {
	if got := groundingSources(textResponse(&genai.Part{Text: "body"})); got != nil {
		t.Errorf("sources = %v, want nil", got)
	}
}

func TestFirstAudio(t *testing.T) {
	resp := textResponse(
		&genai.Part{Text: "ignored"},
		&genai.Part{InlineData: &genai.Blob{MIMEType: "audio/L16", Data: []byte{1, 2, 3}}},
	)

	got := firstAudio(resp)
	if len(got) != 3 {
		t.Fatalf("audio length = %d, want 3", len(got))
	}

	if firstAudio(textResponse(&genai.Part{Text: "only text"})) != nil {
		t.Error("firstAudio should return nil without inline data")
	}
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return false }

func TestTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", genai.APIError{Code: 429}, true},
		{"server error", genai.APIError{Code: 503}, true},
		{"wrapped server error", fmt.Errorf("call failed: %w", genai.APIError{Code: 500}), true},
		{"bad request", genai.APIError{Code: 400}, false},
		{"not found", genai.APIError{Code: 404}, false},
		{"network timeout", timeoutError{}, true},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transient(tt.err); got != tt.want {
				t.Errorf("transient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

package runs

import (
	"net/url"

	"github.com/outpost-labs/scout/pkg/query"
	"github.com/outpost-labs/scout/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "runs", "r").
	Project("id", "ID").
	Project("topic", "Topic").
	Project("approach", "Approach").
	Project("company_name", "CompanyName").
	Project("video_requested", "VideoRequested").
	Project("podcast_requested", "PodcastRequested").
	Project("status", "Status").
	Project("output", "Output").
	Project("error", "Error").
	Project("error_count", "ErrorCount").
	Project("created_at", "CreatedAt").
	Project("completed_at", "CompletedAt").
	Project("duration_ms", "DurationMS")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for archive queries. Nil
// fields are ignored. Status and Approach match exactly; CompanyName uses
// case-insensitive contains matching.
type Filters struct {
	Status      *string `json:"status,omitempty"`
	Approach    *string `json:"approach,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("Approach", f.Approach).
		WhereContains("CompanyName", f.CompanyName)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	if a := values.Get("approach"); a != "" {
		f.Approach = &a
	}
	if c := values.Get("company_name"); c != "" {
		f.CompanyName = &c
	}

	return f
}

func scanRun(s repository.Scanner) (Run, error) {
	var r Run
	err := s.Scan(
		&r.ID,
		&r.Topic,
		&r.Approach,
		&r.CompanyName,
		&r.VideoRequested,
		&r.PodcastRequested,
		&r.Status,
		&r.Output,
		&r.Error,
		&r.ErrorCount,
		&r.CreatedAt,
		&r.CompletedAt,
		&r.DurationMS,
	)
	return r, err
}

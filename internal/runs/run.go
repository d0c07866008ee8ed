// Package runs implements the run archive: a persisted record of every
// research run the service executes, queryable by status, approach, and
// topic. The archive observes runs from the service layer; the engine
// itself never touches persistence.
package runs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is an archived research run. Output holds the projected run output
// as JSON for completed runs; Error holds the fatal error for failed
// runs. ErrorCount counts soft step failures on completed runs.
type Run struct {
	ID               uuid.UUID       `json:"id"`
	Topic            string          `json:"topic"`
	Approach         string          `json:"approach"`
	CompanyName      *string         `json:"company_name"`
	VideoRequested   bool            `json:"video_requested"`
	PodcastRequested bool            `json:"podcast_requested"`
	Status           string          `json:"status"`
	Output           json.RawMessage `json:"output,omitempty"`
	Error            *string         `json:"error,omitempty"`
	ErrorCount       int             `json:"error_count"`
	CreatedAt        time.Time       `json:"created_at"`
	CompletedAt      *time.Time      `json:"completed_at"`
	DurationMS       *int64          `json:"duration_ms"`
}

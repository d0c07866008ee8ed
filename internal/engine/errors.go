// Package engine executes research runs. A run moves through a fixed
// pipeline of steps (topic or company research, optional lead and contact
// enrichment, optional video analysis, report synthesis, optional podcast
// generation); the engine owns the run state, applies step updates, and
// decides routing between steps.
package engine

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for run execution.
var (
	ErrInvalidInput    = errors.New("invalid run input")
	ErrTopicRequired   = errors.New("topic is required")
	ErrCompanyRequired = errors.New("company_name is required for company research")
	ErrUnknownApproach = errors.New("unknown research approach")
	ErrReportFailed    = errors.New("report synthesis failed")
	ErrRunCancelled    = errors.New("run cancelled")
	ErrFieldConflict   = errors.New("run state field already written")
	ErrStepMissing     = errors.New("step not configured")
)

// StepError records a non-fatal or fatal failure from a single step.
// Fatal errors abort the run; non-fatal errors are carried to the output
// so consumers can see which parts of the result are degraded.
type StepError struct {
	Step    StepKind `json:"step"`
	Message string   `json:"message"`
	Fatal   bool     `json:"fatal"`
}

func (e StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Message)
}

// MapHTTPStatus translates run errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrReportFailed):
		return http.StatusBadGateway
	case errors.Is(err, ErrRunCancelled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

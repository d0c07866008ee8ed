package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"time"

	"github.com/outpost-labs/scout/internal/engine"
	"github.com/outpost-labs/scout/internal/notify"
	"github.com/outpost-labs/scout/internal/runs"
	"github.com/outpost-labs/scout/pkg/handlers"
	"github.com/outpost-labs/scout/pkg/routes"
)

// notifyTimeout bounds the background results email after the HTTP
// response has already been written.
const notifyTimeout = 30 * time.Second

var errInvalidBody = errors.New("invalid request body")
var errInvalidEmail = errors.New("invalid notify_email address")

// RunRequest is the body for run submission: the engine input plus an
// optional address for results notification.
type RunRequest struct {
	engine.RunInput
	NotifyEmail string `json:"notify_email,omitempty"`
}

// runHandler executes research runs request-scoped and archives the
// outcome. Archive and notification failures never fail a run that
// produced output.
type runHandler struct {
	executor    Executor
	archive     runs.System
	notifier    notify.System
	logger      *slog.Logger
	maxBodySize int64
}

func newRunHandler(runtime *Runtime, domain *Domain) *runHandler {
	return &runHandler{
		executor:    runtime.Executor,
		archive:     domain.Runs,
		notifier:    runtime.Notifier,
		logger:      runtime.Logger.With("handler", "execute"),
		maxBodySize: runtime.MaxBodySize,
	}
}

func (h *runHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/runs",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Execute},
		},
	}
}

// Execute runs a research request to completion and returns the
// projected output. The call blocks for the duration of the run;
// completed runs are re-fetchable from the archive afterwards.
func (h *runHandler) Execute(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidBody)
		return
	}

	if req.NotifyEmail != "" {
		if _, err := mail.ParseAddress(req.NotifyEmail); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidEmail)
			return
		}
	}

	started := time.Now()
	out, err := h.executor.Execute(r.Context(), req.RunInput)
	took := time.Since(started)

	if err != nil {
		// Input that never started a run has nothing to archive.
		if !errors.Is(err, engine.ErrInvalidInput) {
			h.record(r.Context(), req.RunInput, nil, err, took)
		}
		handlers.RespondError(w, h.logger, engine.MapHTTPStatus(err), err)
		return
	}

	h.record(r.Context(), req.RunInput, out, nil, took)
	h.sendResults(req, out)

	handlers.RespondJSON(w, http.StatusOK, out)
}

func (h *runHandler) record(
	ctx context.Context,
	input engine.RunInput,
	out *engine.Output,
	runErr error,
	took time.Duration,
) {
	var err error
	if runErr != nil {
		_, err = h.archive.RecordFailed(ctx, input, runErr, took)
	} else {
		_, err = h.archive.RecordCompleted(ctx, input, out, took)
	}

	if err != nil {
		h.logger.Error("run archive write failed", "topic", input.Topic, "error", err)
	}
}

// sendResults emails the requester in the background so a slow SMTP
// server never delays the response.
func (h *runHandler) sendResults(req RunRequest, out *engine.Output) {
	if h.notifier == nil || req.NotifyEmail == "" {
		return
	}

	results := notify.Results{
		Topic:            out.Topic,
		ReportURL:        out.ReportURL,
		PodcastURL:       out.PodcastURL,
		PodcastRequested: req.CreatePodcast,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := h.notifier.SendResults(ctx, req.NotifyEmail, results); err != nil {
			h.logger.Error("results notification failed",
				"to", req.NotifyEmail,
				"topic", out.Topic,
				"error", err,
			)
		}
	}()
}

package api

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/outpost-labs/scout/pkg/handlers"
	"github.com/outpost-labs/scout/pkg/routes"
	"github.com/outpost-labs/scout/pkg/storage"
)

// artifactHandler proxies artifact downloads for clients that cannot use
// the time-limited signed URLs embedded in run output.
type artifactHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newArtifactHandler(runtime *Runtime) *artifactHandler {
	return &artifactHandler{
		store:  runtime.Storage,
		logger: runtime.Logger.With("handler", "artifacts"),
	}
}

func (h *artifactHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/artifacts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key...}", Handler: h.Download},
		},
	}
}

// Download streams the artifact at the given key.
func (h *artifactHandler) Download(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		handlers.RespondError(
			w, h.logger,
			http.StatusServiceUnavailable, storage.ErrNotConfigured,
		)
		return
	}

	key := r.PathValue("key")

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType(key))
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}

// contentType resolves the artifact media type. Report markdown and
// podcast WAV are the only types this service produces; anything else
// falls through to the platform's extension table.
func contentType(key string) string {
	switch path.Ext(key) {
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".wav":
		return "audio/wav"
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

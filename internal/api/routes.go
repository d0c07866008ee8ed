package api

import (
	"net/http"

	"github.com/outpost-labs/scout/pkg/openapi"
	"github.com/outpost-labs/scout/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
	spec []byte,
) {
	execute := newRunHandler(runtime, domain)

	routes.Register(
		mux,
		execute.routes(),
		domain.Runs.Handler().Routes(),
		newMetricsHandler(runtime).routes(),
		newArtifactHandler(runtime).routes(),
	)

	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))
}

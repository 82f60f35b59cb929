package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/texpack/pkg/domain/model"
	"github.com/m-mizutani/texpack/pkg/domain/types"
	"github.com/m-mizutani/texpack/pkg/utils/logging"
)

// newHealthHandler reports liveness together with the size of the loaded catalog
func newHealthHandler(texturesMap model.TexturesMap) http.HandlerFunc {
	repositories := len(texturesMap.Hosts())

	return func(w http.ResponseWriter, r *http.Request) {
		status := &model.HealthStatus{
			Status:  "healthy",
			Service: "texpack",
			Version: types.Version,
			Catalog: model.CatalogStatus{
				Textures:     len(texturesMap),
				Repositories: repositories,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logging.From(r.Context()).Error("Failed to encode health response", "error", err)
		}
	}
}

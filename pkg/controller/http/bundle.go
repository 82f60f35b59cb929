package http

import (
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/domain/interfaces"
	"github.com/m-mizutani/texpack/pkg/domain/model"
	"github.com/m-mizutani/texpack/pkg/utils/errs"
	"github.com/m-mizutani/texpack/pkg/utils/logging"
)

// BundleHandler serves model bundles over HTTP
type BundleHandler struct {
	bundleUC    interfaces.BundleUseCase
	texturesMap model.TexturesMap
	modelHosts  map[string]struct{}
}

// NewBundleHandler creates a new BundleHandler. When modelHosts is not empty,
// only model URLs on those hosts are accepted.
func NewBundleHandler(bundleUC interfaces.BundleUseCase, texturesMap model.TexturesMap, modelHosts ...string) *BundleHandler {
	h := &BundleHandler{
		bundleUC:    bundleUC,
		texturesMap: texturesMap,
		modelHosts:  map[string]struct{}{},
	}
	for _, host := range modelHosts {
		if key := hostKey(host); key != "" {
			h.modelHosts[key] = struct{}{}
		}
	}
	return h
}

// modelURL returns the "model" query parameter, writing an error response
// when it is missing or points to a host that is not allowed
func (h *BundleHandler) modelURL(w http.ResponseWriter, r *http.Request) (string, bool) {
	ctx := r.Context()

	modelURL := r.URL.Query().Get("model")
	if modelURL == "" {
		writeError(ctx, w, goerr.New("model query parameter is required"), http.StatusBadRequest)
		return "", false
	}

	if len(h.modelHosts) == 0 {
		return modelURL, true
	}

	u, err := url.Parse(modelURL)
	if err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid model URL"), http.StatusBadRequest)
		return "", false
	}
	if _, ok := h.modelHosts[strings.ToLower(u.Host)]; !ok {
		logging.From(ctx).Warn("Model host not allowed", "model_url", modelURL)
		writeError(ctx, w, goerr.New("model host is not allowed", goerr.V("host", u.Host)), http.StatusForbidden)
		return "", false
	}

	return modelURL, true
}

func hostKey(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return ""
		}
		s = u.Host
	}
	return strings.ToLower(s)
}

// Bundle responds with the archive of the model given by the "model" query parameter
func (h *BundleHandler) Bundle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.From(ctx)

	modelURL, ok := h.modelURL(w, r)
	if !ok {
		return
	}

	result, err := h.bundleUC.Bundle(ctx, modelURL, h.texturesMap)
	if err != nil {
		status := statusOf(err)
		if status >= http.StatusInternalServerError {
			errs.Handle(ctx, err)
		} else {
			logger.Warn("Bundle request rejected", "error", err)
		}
		writeError(ctx, w, err, status)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": result.Filename,
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.Header().Set("X-Bundle-ID", result.ID)
	w.Header().Set("X-Bundle-Textures", strconv.Itoa(len(result.Textures)))
	w.Header().Set("X-Bundle-Diagnostics", strconv.Itoa(len(result.Diagnostics)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(result.Data); err != nil {
		logger.Error("Failed to write archive response", "error", err)
	}
}

// Inspect responds with the bundle plan of the model as JSON
func (h *BundleHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	modelURL, ok := h.modelURL(w, r)
	if !ok {
		return
	}

	plan, err := h.bundleUC.Inspect(ctx, modelURL, h.texturesMap)
	if err != nil {
		status := statusOf(err)
		if status >= http.StatusInternalServerError {
			errs.Handle(ctx, err)
		}
		writeError(ctx, w, err, status)
		return
	}

	writeJSON(ctx, w, plan, http.StatusOK)
}

// statusOf maps a bundle failure to an HTTP status code
func statusOf(err error) int {
	switch model.KindOf(err) {
	case model.ErrorKindInvalidArgument:
		return http.StatusBadRequest
	case model.ErrorKindModelFetch:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/common"
)

// InFlightChecker reports whether a generation is running
type InFlightChecker interface {
	InFlight() bool
}

type APIHandler struct {
	logger   arbor.ILogger
	config   *common.Config
	inFlight InFlightChecker
}

func NewAPIHandler(config *common.Config, inFlight InFlightChecker, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		logger:   logger,
		config:   config,
		inFlight: inFlight,
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
	})
}

// HealthHandler returns health check status
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	resp := map[string]interface{}{
		"status":   "ok",
		"provider": string(h.config.Oracle.Provider),
		"history":  h.config.History.Enabled,
	}
	if h.inFlight != nil {
		resp["generating"] = h.inFlight.InFlight()
	}
	WriteJSON(w, http.StatusOK, resp)
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/interfaces"
)

// SchedulerHandler exposes housekeeping job status
type SchedulerHandler struct {
	scheduler interfaces.SchedulerService
	logger    arbor.ILogger
}

func NewSchedulerHandler(scheduler interfaces.SchedulerService, logger arbor.ILogger) *SchedulerHandler {
	return &SchedulerHandler{
		scheduler: scheduler,
		logger:    logger,
	}
}

// ListJobsHandler handles GET /api/jobs
func (h *SchedulerHandler) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"running": h.scheduler.IsRunning(),
		"jobs":    h.scheduler.GetAllJobStatuses(),
	})
}

// TriggerJobHandler handles POST /api/jobs/{name}/trigger
func (h *SchedulerHandler) TriggerJobHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	name := strings.TrimSuffix(PathID(r, "/api/jobs/"), "/trigger")
	if name == "" {
		WriteError(w, http.StatusBadRequest, "Job name is required")
		return
	}

	if err := h.scheduler.TriggerJob(name); err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	h.logger.Info().Str("job_name", name).Msg("Job triggered manually")
	WriteJSON(w, http.StatusAccepted, map[string]string{
		"status":  "started",
		"message": "Job " + name + " triggered",
	})
}

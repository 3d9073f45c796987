package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/interfaces"
	"github.com/ternarybob/qanda/internal/models"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// HistoryHandler serves stored generation results
type HistoryHandler struct {
	storage interfaces.ResultStorage
	logger  arbor.ILogger
}

func NewHistoryHandler(storage interfaces.ResultStorage, logger arbor.ILogger) *HistoryHandler {
	return &HistoryHandler{
		storage: storage,
		logger:  logger,
	}
}

// historySummary is the list view of a stored result
type historySummary struct {
	ID          string            `json:"id"`
	Topic       string            `json:"topic"`
	Difficulty  models.Difficulty `json:"difficulty"`
	QACount     int               `json:"qaCount"`
	SourceCount int               `json:"sourceCount"`
	Provider    string            `json:"provider,omitempty"`
	CreatedAt   string            `json:"createdAt"`
}

// ListHandler handles GET /api/history?limit=N
func (h *HistoryHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	limit := GetLimitParam(r, defaultHistoryLimit, maxHistoryLimit)
	results, err := h.storage.List(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list history")
		WriteError(w, http.StatusInternalServerError, "Failed to list history")
		return
	}

	items := make([]historySummary, len(results))
	for i, res := range results {
		items[i] = historySummary{
			ID:          res.ID,
			Topic:       res.Topic,
			Difficulty:  res.Difficulty,
			QACount:     len(res.QAList),
			SourceCount: len(res.Sources),
			Provider:    res.Provider,
			CreatedAt:   res.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"results": items,
		"count":   len(items),
	})
}

// GetHandler handles GET /api/history/{id}
func (h *HistoryHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id := PathID(r, "/api/history/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Result ID is required")
		return
	}

	result, err := h.storage.Get(r.Context(), id)
	if err != nil {
		h.writeStorageError(w, err, id)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// DeleteHandler handles DELETE /api/history/{id}
func (h *HistoryHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	id := PathID(r, "/api/history/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Result ID is required")
		return
	}

	if err := h.storage.Delete(r.Context(), id); err != nil {
		h.writeStorageError(w, err, id)
		return
	}

	h.logger.Info().Str("result_id", id).Msg("Deleted result from history")
	WriteSuccess(w, "Result deleted")
}

func (h *HistoryHandler) writeStorageError(w http.ResponseWriter, err error, id string) {
	if errors.Is(err, models.ErrResultNotFound) {
		WriteError(w, http.StatusNotFound, "Result not found")
		return
	}
	h.logger.Error().Err(err).Str("result_id", id).Msg("History storage error")
	WriteError(w, http.StatusInternalServerError, "History storage error")
}

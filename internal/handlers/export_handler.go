package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/interfaces"
	"github.com/ternarybob/qanda/internal/models"
	"github.com/ternarybob/qanda/internal/services/export"
)

// ExportHandler serves results as PDF downloads
type ExportHandler struct {
	generation interfaces.GenerationService
	storage    interfaces.ResultStorage
	export     interfaces.ExportService
	logger     arbor.ILogger
}

func NewExportHandler(
	generation interfaces.GenerationService,
	storage interfaces.ResultStorage,
	exportService interfaces.ExportService,
	logger arbor.ILogger,
) *ExportHandler {
	return &ExportHandler{
		generation: generation,
		storage:    storage,
		export:     exportService,
		logger:     logger,
	}
}

// ExportPDFHandler handles GET /api/export for the current result, or ?id= for a stored one
func (h *ExportHandler) ExportPDFHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	var result *models.GenerationResult
	if id := r.URL.Query().Get("id"); id != "" {
		stored, err := h.storage.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, models.ErrResultNotFound) {
				WriteError(w, http.StatusNotFound, "Result not found")
				return
			}
			h.logger.Error().Err(err).Str("result_id", id).Msg("Failed to load result for export")
			WriteError(w, http.StatusInternalServerError, "Failed to load result")
			return
		}
		result = stored
	} else {
		current, ok := h.generation.Current()
		if !ok {
			WriteError(w, http.StatusNotFound, models.ErrNoResult.Error())
			return
		}
		result = current
	}

	pdf, err := h.export.ExportPDF(result)
	if err != nil {
		h.logger.Error().Err(err).Str("result_id", result.ID).Msg("PDF export failed")
		WriteError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	filename := h.export.Filename(result.Topic, result.Difficulty)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	if pages, err := export.PageCount(pdf); err == nil {
		w.Header().Set("X-Page-Count", strconv.Itoa(pages))
	} else {
		h.logger.Warn().Err(err).Msg("Could not count PDF pages")
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to write PDF response")
		return
	}

	h.logger.Info().
		Str("result_id", result.ID).
		Str("filename", filename).
		Int("bytes", len(pdf)).
		Msg("Exported result as PDF")
}

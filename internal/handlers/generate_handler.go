package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/interfaces"
	"github.com/ternarybob/qanda/internal/models"
	"github.com/ternarybob/qanda/internal/services/oracle"
)

// GenerateHandler serves the generation endpoint and the current result
type GenerateHandler struct {
	generation interfaces.GenerationService
	logger     arbor.ILogger
}

func NewGenerateHandler(generation interfaces.GenerationService, logger arbor.ILogger) *GenerateHandler {
	return &GenerateHandler{
		generation: generation,
		logger:     logger,
	}
}

type generateRequest struct {
	Topic        string `json:"topic"`
	Difficulty   string `json:"difficulty"`
	NumQuestions *int   `json:"numQuestions"`
}

// GenerateHandler handles POST /api/generate
func (h *GenerateHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var body generateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	difficulty, err := models.ParseDifficulty(body.Difficulty)
	if err != nil {
		h.writeGenerationError(w, err)
		return
	}

	numQuestions := models.DefaultNumQuestions
	if body.NumQuestions != nil {
		numQuestions = *body.NumQuestions
	}

	result, err := h.generation.Generate(r.Context(), models.GenerationRequest{
		Topic:        body.Topic,
		Difficulty:   difficulty,
		NumQuestions: numQuestions,
	})
	if err != nil {
		h.writeGenerationError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// writeGenerationError maps generation errors to HTTP responses.
// Oracle and parse failures share one user-facing message; the cause is only logged.
func (h *GenerateHandler) writeGenerationError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	var oracleErr *models.OracleError

	switch {
	case errors.As(err, &validationErr):
		WriteJSON(w, http.StatusBadRequest, map[string]string{
			"status": "error",
			"error":  validationErr.Message,
			"field":  validationErr.Field,
		})
	case errors.Is(err, models.ErrBusy):
		WriteError(w, http.StatusConflict, "A generation request is already in progress")
	case errors.As(err, &oracleErr):
		if oracle.IsRateLimitError(err) {
			if delay := oracle.ExtractRetryDelay(err); delay > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			}
		}
		WriteError(w, http.StatusBadGateway, models.UserFacingGenerationError)
	case errors.Is(err, models.ErrMalformedResponse):
		WriteError(w, http.StatusBadGateway, models.UserFacingGenerationError)
	default:
		h.logger.Error().Err(err).Msg("Unexpected generation error")
		WriteError(w, http.StatusInternalServerError, models.UserFacingGenerationError)
	}
}

// CurrentResultHandler handles GET /api/result
func (h *GenerateHandler) CurrentResultHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	result, ok := h.generation.Current()
	if !ok {
		WriteError(w, http.StatusNotFound, models.ErrNoResult.Error())
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// ClearResultHandler handles DELETE /api/result
func (h *GenerateHandler) ClearResultHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	h.generation.Clear()
	WriteSuccess(w, "Result cleared")
}

package interfaces

import (
	"context"

	"github.com/ternarybob/qanda/internal/models"
)

// GenerationService is the only contract the rendering layer depends on
type GenerationService interface {
	// Generate validates the request, calls the oracle and returns a parsed result
	Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)
	// Current returns the result of the last successful generation, if any
	Current() (*models.GenerationResult, bool)
	// Clear discards the current result
	Clear()
}

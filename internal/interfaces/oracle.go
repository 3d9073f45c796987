package interfaces

import (
	"context"

	"github.com/ternarybob/qanda/internal/models"
)

// Oracle is the external generative-AI text/search service.
// It is treated as an opaque, non-deterministic function from prompt to text plus citations.
type Oracle interface {
	// Generate sends a single prompt and returns the reply text with any grounding citations
	Generate(ctx context.Context, prompt string) (*models.OracleReply, error)
	// Provider returns the provider name ("gemini", "claude")
	Provider() string
	// Close releases client resources
	Close() error
}

package interfaces

import "github.com/ternarybob/qanda/internal/models"

// ExportService renders a generation result as a paginated PDF document
type ExportService interface {
	// ExportPDF returns the PDF bytes for result
	ExportPDF(result *models.GenerationResult) ([]byte, error)
	// Filename derives the download filename from topic and difficulty
	Filename(topic string, difficulty models.Difficulty) string
}

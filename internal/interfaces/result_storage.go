package interfaces

import (
	"context"
	"time"

	"github.com/ternarybob/qanda/internal/models"
)

// ResultStorage persists generation results for later listing and export
type ResultStorage interface {
	Save(ctx context.Context, result *models.GenerationResult) error
	Get(ctx context.Context, id string) (*models.GenerationResult, error)
	// List returns results newest first; limit <= 0 returns all
	List(ctx context.Context, limit int) ([]*models.GenerationResult, error)
	Delete(ctx context.Context, id string) error
	// DeleteOlderThan removes results created before cutoff and returns how many were removed
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	Close() error
}

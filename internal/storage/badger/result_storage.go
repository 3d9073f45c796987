package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/interfaces"
	"github.com/ternarybob/qanda/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ResultStorage implements interfaces.ResultStorage on badgerhold, keyed by result ID
type ResultStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

var _ interfaces.ResultStorage = (*ResultStorage)(nil)

// NewResultStorage creates a ResultStorage over db
func NewResultStorage(db *BadgerDB, logger arbor.ILogger) *ResultStorage {
	return &ResultStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ResultStorage) Save(ctx context.Context, result *models.GenerationResult) error {
	if result == nil || result.ID == "" {
		return fmt.Errorf("result ID is required")
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}

	if err := s.db.Store().Upsert(result.ID, result); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	s.logger.Debug().Str("result_id", result.ID).Str("topic", result.Topic).Msg("Saved result to history")
	return nil
}

func (s *ResultStorage) Get(ctx context.Context, id string) (*models.GenerationResult, error) {
	var result models.GenerationResult
	if err := s.db.Store().Get(id, &result); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrResultNotFound, id)
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return &result, nil
}

func (s *ResultStorage) List(ctx context.Context, limit int) ([]*models.GenerationResult, error) {
	query := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []models.GenerationResult
	if err := s.db.Store().Find(&results, query); err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	out := make([]*models.GenerationResult, len(results))
	for i := range results {
		out[i] = &results[i]
	}
	return out, nil
}

func (s *ResultStorage) Delete(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.GenerationResult{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return fmt.Errorf("%w: %s", models.ErrResultNotFound, id)
		}
		return fmt.Errorf("failed to delete result: %w", err)
	}
	return nil
}

func (s *ResultStorage) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	var stale []models.GenerationResult
	if err := s.db.Store().Find(&stale, badgerhold.Where("CreatedAt").Lt(cutoff)); err != nil {
		return 0, fmt.Errorf("failed to find expired results: %w", err)
	}

	deleted := 0
	for _, r := range stale {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		if err := s.db.Store().Delete(r.ID, &models.GenerationResult{}); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				continue
			}
			return deleted, fmt.Errorf("failed to delete result %s: %w", r.ID, err)
		}
		deleted++
	}

	if deleted > 0 {
		s.db.CompactValueLog()
	}
	return deleted, nil
}

// Close closes the underlying database
func (s *ResultStorage) Close() error {
	return s.db.Close()
}

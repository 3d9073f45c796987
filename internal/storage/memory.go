package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ternarybob/qanda/internal/interfaces"
	"github.com/ternarybob/qanda/internal/models"
)

// MemoryResultStorage keeps results for the life of the process
type MemoryResultStorage struct {
	mu      sync.RWMutex
	results map[string]models.GenerationResult
}

var _ interfaces.ResultStorage = (*MemoryResultStorage)(nil)

func NewMemoryResultStorage() *MemoryResultStorage {
	return &MemoryResultStorage{results: make(map[string]models.GenerationResult)}
}

func (m *MemoryResultStorage) Save(ctx context.Context, result *models.GenerationResult) error {
	if result == nil || result.ID == "" {
		return fmt.Errorf("result ID is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[result.ID] = *result
	return nil
}

func (m *MemoryResultStorage) Get(ctx context.Context, id string) (*models.GenerationResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrResultNotFound, id)
	}
	return &r, nil
}

func (m *MemoryResultStorage) List(ctx context.Context, limit int) ([]*models.GenerationResult, error) {
	m.mu.RLock()
	out := make([]*models.GenerationResult, 0, len(m.results))
	for _, r := range m.results {
		r := r
		out = append(out, &r)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryResultStorage) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.results[id]; !ok {
		return fmt.Errorf("%w: %s", models.ErrResultNotFound, id)
	}
	delete(m.results, id)
	return nil
}

func (m *MemoryResultStorage) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deleted := 0
	for id, r := range m.results {
		if r.CreatedAt.Before(cutoff) {
			delete(m.results, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *MemoryResultStorage) Close() error {
	return nil
}

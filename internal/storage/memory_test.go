package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/common"
	"github.com/ternarybob/qanda/internal/models"
)

func TestMemoryResultStorage(t *testing.T) {
	m := NewMemoryResultStorage()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, m.Save(ctx, &models.GenerationResult{ID: "qa_a", CreatedAt: now.Add(-2 * time.Hour)}))
	require.NoError(t, m.Save(ctx, &models.GenerationResult{ID: "qa_b", CreatedAt: now}))

	list, err := m.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "qa_b", list[0].ID)

	deleted, err := m.DeleteOlderThan(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = m.Get(ctx, "qa_a")
	assert.ErrorIs(t, err, models.ErrResultNotFound)

	require.NoError(t, m.Delete(ctx, "qa_b"))
	assert.ErrorIs(t, m.Delete(ctx, "qa_b"), models.ErrResultNotFound)
}

func TestNewResultStorage(t *testing.T) {
	logger := arbor.NewLogger()

	cfg := common.NewDefaultConfig()
	cfg.History.Enabled = false
	s, err := NewResultStorage(logger, cfg)
	require.NoError(t, err)
	assert.IsType(t, &MemoryResultStorage{}, s)

	cfg.History.Enabled = true
	cfg.Storage.Badger.Path = t.TempDir()
	s, err = NewResultStorage(logger, cfg)
	require.NoError(t, err)
	defer s.Close()
	assert.NotNil(t, s)
}

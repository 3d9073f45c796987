package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/common"
	"github.com/ternarybob/qanda/internal/models"
)

func newTestStorage(t *testing.T) *ResultStorage {
	t.Helper()
	logger := arbor.NewLogger()
	db, err := NewBadgerDB(logger, &common.BadgerConfig{Path: t.TempDir()})
	require.NoError(t, err)
	storage := NewResultStorage(db, logger)
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}

func result(id string, created time.Time) *models.GenerationResult {
	return &models.GenerationResult{
		ID:         id,
		Topic:      "Topic " + id,
		Difficulty: models.DifficultyMedium,
		QAList:     []models.QAPair{{Question: "Q", Answer: "A"}},
		Sources:    []models.Source{{URI: "https://a.example", Title: "A", Summary: "S"}},
		CreatedAt:  created,
	}
}

func TestResultStorage_SaveGet(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	in := result("qa_1", time.Now().UTC())
	require.NoError(t, storage.Save(ctx, in))

	out, err := storage.Get(ctx, "qa_1")
	require.NoError(t, err)
	assert.Equal(t, in.Topic, out.Topic)
	assert.Equal(t, in.QAList, out.QAList)
	assert.Equal(t, in.Sources, out.Sources)
	assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
}

func TestResultStorage_GetMissing(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.Get(context.Background(), "qa_missing")
	assert.ErrorIs(t, err, models.ErrResultNotFound)
}

func TestResultStorage_SaveRequiresID(t *testing.T) {
	storage := newTestStorage(t)

	assert.Error(t, storage.Save(context.Background(), &models.GenerationResult{}))
}

func TestResultStorage_ListNewestFirst(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		require.NoError(t, storage.Save(ctx, result(fmt.Sprintf("qa_%d", i), base.Add(time.Duration(i)*time.Minute))))
	}

	all, err := storage.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "qa_4", all[0].ID)
	assert.Equal(t, "qa_0", all[4].ID)

	limited, err := storage.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "qa_4", limited[0].ID)
	assert.Equal(t, "qa_3", limited[1].ID)
}

func TestResultStorage_Delete(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, result("qa_1", time.Now().UTC())))
	require.NoError(t, storage.Delete(ctx, "qa_1"))

	_, err := storage.Get(ctx, "qa_1")
	assert.ErrorIs(t, err, models.ErrResultNotFound)
	assert.ErrorIs(t, storage.Delete(ctx, "qa_1"), models.ErrResultNotFound)
}

func TestResultStorage_DeleteOlderThan(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, storage.Save(ctx, result("qa_old1", now.Add(-48*time.Hour))))
	require.NoError(t, storage.Save(ctx, result("qa_old2", now.Add(-25*time.Hour))))
	require.NoError(t, storage.Save(ctx, result("qa_new", now.Add(-time.Hour))))

	deleted, err := storage.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	remaining, err := storage.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "qa_new", remaining[0].ID)
}

func TestNewBadgerDB_ResetOnStartup(t *testing.T) {
	logger := arbor.NewLogger()
	path := t.TempDir()
	ctx := context.Background()

	db, err := NewBadgerDB(logger, &common.BadgerConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, NewResultStorage(db, logger).Save(ctx, result("qa_1", time.Now().UTC())))
	require.NoError(t, db.Close())

	db, err = NewBadgerDB(logger, &common.BadgerConfig{Path: path, ResetOnStartup: true})
	require.NoError(t, err)
	storage := NewResultStorage(db, logger)
	defer storage.Close()

	_, err = storage.Get(ctx, "qa_1")
	assert.ErrorIs(t, err, models.ErrResultNotFound)
}

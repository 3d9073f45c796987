package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/interfaces"
)

// HistoryPruneJobName is the scheduler name of the history retention job
const HistoryPruneJobName = "history_prune"

// NewHistoryPruneJob returns a job handler deleting results older than maxAge
func NewHistoryPruneJob(storage interfaces.ResultStorage, maxAge time.Duration, logger arbor.ILogger) func() error {
	return func() error {
		cutoff := time.Now().UTC().Add(-maxAge)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		deleted, err := storage.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}

		if deleted > 0 {
			logger.Info().
				Int("deleted", deleted).
				Str("cutoff", cutoff.Format(time.RFC3339)).
				Msg("Pruned expired results from history")
		}
		return nil
	}
}

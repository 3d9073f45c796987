package storage

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/common"
	"github.com/ternarybob/qanda/internal/interfaces"
	"github.com/ternarybob/qanda/internal/storage/badger"
)

// NewResultStorage returns the badger-backed history store, or an in-memory
// store when history is disabled.
func NewResultStorage(logger arbor.ILogger, config *common.Config) (interfaces.ResultStorage, error) {
	if !config.History.Enabled {
		logger.Info().Msg("Result history disabled, using in-memory storage")
		return NewMemoryResultStorage(), nil
	}

	db, err := badger.NewBadgerDB(logger, &config.Storage.Badger)
	if err != nil {
		return nil, err
	}
	return badger.NewResultStorage(db, logger), nil
}

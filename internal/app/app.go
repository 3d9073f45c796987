package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/common"
	"github.com/ternarybob/qanda/internal/handlers"
	"github.com/ternarybob/qanda/internal/interfaces"
	"github.com/ternarybob/qanda/internal/services/export"
	"github.com/ternarybob/qanda/internal/services/generation"
	"github.com/ternarybob/qanda/internal/services/oracle"
	"github.com/ternarybob/qanda/internal/services/scheduler"
	"github.com/ternarybob/qanda/internal/storage"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	Oracle            interfaces.Oracle
	ResultStorage     interfaces.ResultStorage
	GenerationService *generation.Service
	ExportService     *export.Service
	SchedulerService  *scheduler.Service

	// HTTP handlers
	APIHandler       *handlers.APIHandler
	GenerateHandler  *handlers.GenerateHandler
	ExportHandler    *handlers.ExportHandler
	HistoryHandler   *handlers.HistoryHandler
	SchedulerHandler *handlers.SchedulerHandler
	WSHandler        *handlers.WebSocketHandler
}

// New initializes the application, creating the oracle client from config
func New(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (*App, error) {
	o, err := oracle.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize oracle: %w", err)
	}

	a, err := NewWithOracle(cfg, logger, o)
	if err != nil {
		o.Close()
		return nil, err
	}
	return a, nil
}

// NewWithOracle initializes the application around an existing oracle
func NewWithOracle(cfg *common.Config, logger arbor.ILogger, o interfaces.Oracle) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
		Oracle: o,
	}

	if err := a.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := a.initServices(); err != nil {
		a.ResultStorage.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	a.initHandlers()

	logger.Info().
		Str("provider", a.Oracle.Provider()).
		Bool("history_enabled", cfg.History.Enabled).
		Bool("websocket_enabled", cfg.WebSocket.Enabled).
		Msg("Application initialization complete")

	return a, nil
}

func (a *App) initStorage() error {
	resultStorage, err := storage.NewResultStorage(a.Logger, a.Config)
	if err != nil {
		return err
	}
	a.ResultStorage = resultStorage

	if a.Config.History.Enabled {
		a.Logger.Debug().
			Str("storage", "badger").
			Str("path", a.Config.Storage.Badger.Path).
			Msg("Result history initialized")
	}
	return nil
}

func (a *App) initServices() error {
	// WebSocket handler doubles as the status publisher for the generation service
	var publisher interfaces.StatusPublisher
	if a.Config.WebSocket.Enabled {
		a.WSHandler = handlers.NewWebSocketHandler(a.Logger)
		publisher = a.WSHandler
	}

	a.GenerationService = generation.NewService(
		a.Oracle,
		a.ResultStorage,
		publisher,
		&a.Config.Generation,
		a.Logger,
	)

	a.ExportService = export.NewService(a.Logger, &a.Config.Export)

	a.SchedulerService = scheduler.NewService(a.Logger)
	if a.Config.History.Enabled {
		maxAge, err := common.ParseOptionalDuration(a.Config.History.MaxAge)
		if err != nil {
			return fmt.Errorf("history.max_age: %w", err)
		}
		if maxAge > 0 {
			if err := a.SchedulerService.RegisterJob(
				scheduler.HistoryPruneJobName,
				a.Config.History.PruneSchedule,
				fmt.Sprintf("Delete results older than %s", maxAge),
				scheduler.NewHistoryPruneJob(a.ResultStorage, maxAge, a.Logger),
			); err != nil {
				return fmt.Errorf("failed to register history prune job: %w", err)
			}
		}
	}

	if err := a.SchedulerService.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	return nil
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Config, a.GenerationService, a.Logger)
	a.GenerateHandler = handlers.NewGenerateHandler(a.GenerationService, a.Logger)
	a.ExportHandler = handlers.NewExportHandler(a.GenerationService, a.ResultStorage, a.ExportService, a.Logger)
	a.HistoryHandler = handlers.NewHistoryHandler(a.ResultStorage, a.Logger)
	a.SchedulerHandler = handlers.NewSchedulerHandler(a.SchedulerService, a.Logger)
}

// Close releases all application resources
func (a *App) Close() error {
	if a.SchedulerService != nil {
		if err := a.SchedulerService.Stop(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to stop scheduler service")
		}
	}

	if a.WSHandler != nil {
		a.WSHandler.Close()
	}

	if a.Oracle != nil {
		if err := a.Oracle.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close oracle client")
		}
	}

	if a.ResultStorage != nil {
		if err := a.ResultStorage.Close(); err != nil {
			return fmt.Errorf("failed to close result storage: %w", err)
		}
	}

	a.Logger.Info().Msg("Application closed")
	return nil
}

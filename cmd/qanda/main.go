package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/app"
	"github.com/ternarybob/qanda/internal/common"
	"github.com/ternarybob/qanda/internal/models"
	"github.com/ternarybob/qanda/internal/server"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths // Multiple -config flags supported
	serverPort   = flag.Int("port", 0, "Server port (overrides config)")
	serverPortP  = flag.Int("p", 0, "Server port (shorthand, overrides config)")
	serverHost   = flag.String("host", "", "Server host (overrides config)")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	// One-shot generation
	topic        = flag.String("topic", "", "Generate Q&A for this topic, write the PDF and exit")
	difficulty   = flag.String("difficulty", string(models.DifficultyMedium), "Question difficulty: easy, medium or hard")
	numQuestions = flag.Int("questions", models.DefaultNumQuestions, "Number of questions to generate")
	outDir       = flag.String("out", ".", "Directory for the generated PDF")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Qanda version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	finalPort := *serverPort
	if *serverPortP != 0 {
		finalPort = *serverPortP
	}

	// Startup order: config (defaults -> files -> env) -> CLI overrides -> logger -> banner
	if len(configFiles) == 0 {
		if _, err := os.Stat("qanda.toml"); err == nil {
			configFiles = append(configFiles, "qanda.toml")
		} else if _, err := os.Stat("deployments/local/qanda.toml"); err == nil {
			configFiles = append(configFiles, "deployments/local/qanda.toml")
		}
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		arbor.NewLogger().Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration files")
		os.Exit(1)
	}

	common.ApplyFlagOverrides(config, finalPort, *serverHost)

	common.InstallCrashHandler(config.Logging.Dir)
	defer common.RecoverWithCrashFile()

	logger := common.InitLogger(config)

	if *topic != "" {
		os.Exit(runOnce(config, logger))
	}

	common.PrintBanner(config, logger)

	logger.Debug().
		Str("log_level", config.Logging.Level).
		Strs("log_output", config.Logging.Output).
		Str("badger_path", config.Storage.Badger.Path).
		Str("oracle_rate_limit", config.Oracle.RateLimit).
		Msg("Resolved configuration (sanitized)")

	serve(config, logger)
}

func serve(config *common.Config, logger arbor.ILogger) {
	application, err := app.New(context.Background(), config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	srv := server.New(application)
	serverErr := make(chan error, 1)

	common.SafeGo(logger, "http-server", func() {
		serverErr <- srv.Start()
	})

	logger.Info().
		Strs("config_files", configFiles).
		Str("url", fmt.Sprintf("http://%s", srv.Addr())).
		Msg("Server ready - Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info().Msg("Interrupt signal received")
	case err := <-serverErr:
		if err != nil {
			logger.Error().Err(err).Msg("Server failed")
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}

	logger.Info().Msg("Server stopped")
}

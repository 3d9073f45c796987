package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/app"
	"github.com/ternarybob/qanda/internal/common"
	"github.com/ternarybob/qanda/internal/models"
)

// runOnce generates Q&A for -topic, writes the PDF to -out and returns the process exit code
func runOnce(config *common.Config, logger arbor.ILogger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level, err := models.ParseDifficulty(*difficulty)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	application, err := app.New(ctx, config, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize application")
		return 1
	}
	defer application.Close()

	result, err := application.GenerationService.Generate(ctx, models.GenerationRequest{
		Topic:        *topic,
		Difficulty:   level,
		NumQuestions: *numQuestions,
	})
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Fprintln(os.Stderr, validationErr.Message)
			return 2
		}
		logger.Error().Err(err).Msg("Generation failed")
		fmt.Fprintln(os.Stderr, models.UserFacingGenerationError)
		return 1
	}

	pdf, err := application.ExportService.ExportPDF(result)
	if err != nil {
		logger.Error().Err(err).Msg("PDF export failed")
		return 1
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		logger.Error().Err(err).Str("dir", *outDir).Msg("Failed to create output directory")
		return 1
	}

	path := outputPath(*outDir, application.ExportService.Filename(result.Topic, result.Difficulty))
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to write PDF")
		return 1
	}

	logger.Info().
		Str("path", path).
		Int("qa_count", len(result.QAList)).
		Int("source_count", len(result.Sources)).
		Msg("Q&A written")
	fmt.Println(path)
	return 0
}

// outputPath joins filename onto dir with path separators in filename replaced,
// so a topic can never name a subdirectory or escape dir
func outputPath(dir, filename string) string {
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, filename)
	return filepath.Join(dir, filepath.Base(safe))
}

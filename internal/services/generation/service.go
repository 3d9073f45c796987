package generation

import (
	"context"
	"errors"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/common"
	"github.com/ternarybob/qanda/internal/interfaces"
	"github.com/ternarybob/qanda/internal/models"
	"github.com/ternarybob/qanda/internal/services/parser"
)

// Service implements interfaces.GenerationService.
//
// Generate runs the primary oracle call, parses the reply, deduplicates the
// cited sources and then runs a best-effort summary pass over them. The two
// oracle calls are sequential.
type Service struct {
	oracle    interfaces.Oracle
	storage   interfaces.ResultStorage
	publisher interfaces.StatusPublisher
	session   *Session
	config    *common.GenerationConfig
	logger    arbor.ILogger
	now       func() time.Time
}

var _ interfaces.GenerationService = (*Service)(nil)

// NewService creates a generation service. storage and publisher may be nil.
func NewService(
	oracle interfaces.Oracle,
	storage interfaces.ResultStorage,
	publisher interfaces.StatusPublisher,
	config *common.GenerationConfig,
	logger arbor.ILogger,
) *Service {
	return &Service{
		oracle:    oracle,
		storage:   storage,
		publisher: publisher,
		session:   NewSession(),
		config:    config,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate produces a validated result for req.
//
// Errors:
//   - *models.ValidationError: bad input, no oracle call made
//   - models.ErrBusy: another request is in flight
//   - *models.OracleError: the primary oracle call failed
//   - *models.MalformedResponseError: the reply had no usable Q&A array
func (s *Service) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	if err := req.Validate(s.config.MaxQuestions); err != nil {
		return nil, err
	}

	if err := s.session.Begin(); err != nil {
		return nil, err
	}

	// Ends the in-flight request on error and on panic
	completed := false
	defer func() {
		if !completed {
			s.session.Fail()
		}
	}()

	requestID := common.NewRequestID()
	logger := s.logger.WithCorrelationId(requestID)

	s.publish(models.StatusEvent{Type: models.StatusGenerationStarted, RequestID: requestID, Topic: req.Topic})

	logger.Info().
		Str("topic", req.Topic).
		Str("difficulty", string(req.Difficulty)).
		Int("num_questions", req.NumQuestions).
		Str("provider", s.oracle.Provider()).
		Msg("Generating Q&A")

	result, err := s.run(ctx, req, requestID, logger)
	if err != nil {
		s.publish(models.StatusEvent{
			Type:      models.StatusGenerationFailed,
			RequestID: requestID,
			Topic:     req.Topic,
			Message:   models.UserFacingGenerationError,
		})
		return nil, err
	}

	s.session.Complete(result)
	completed = true

	if s.storage != nil {
		if err := s.storage.Save(ctx, result); err != nil {
			logger.Warn().Err(err).Str("result_id", result.ID).Msg("Failed to save result to history")
		}
	}

	s.publish(models.StatusEvent{
		Type:      models.StatusGenerationCompleted,
		RequestID: requestID,
		ResultID:  result.ID,
		Topic:     req.Topic,
	})

	logger.Info().
		Str("result_id", result.ID).
		Int("qa_count", len(result.QAList)).
		Int("source_count", len(result.Sources)).
		Msg("Q&A generation completed")

	return result, nil
}

func (s *Service) run(ctx context.Context, req models.GenerationRequest, requestID string, logger arbor.ILogger) (*models.GenerationResult, error) {
	reply, err := s.oracle.Generate(ctx, BuildQAPrompt(req))
	if err != nil {
		logger.Error().Err(err).Msg("Primary oracle call failed")
		return nil, &models.OracleError{Provider: s.oracle.Provider(), Err: err}
	}

	qaList, dropped, err := parser.ParseResponse(reply.Text)
	if err != nil {
		logger.Error().
			Err(err).
			Int("response_length", len(reply.Text)).
			Msg("Oracle reply could not be parsed")
		return nil, err
	}
	if dropped > 0 {
		logger.Warn().Int("dropped", dropped).Msg("Dropped malformed Q&A elements")
	}

	sources := parser.ExtractSources(reply.Citations)
	logger.Debug().
		Int("citations", len(reply.Citations)).
		Int("sources", len(sources)).
		Msg("Extracted sources")

	if s.config.EnrichSources && len(sources) > 0 {
		s.publish(models.StatusEvent{Type: models.StatusGenerationEnriching, RequestID: requestID, Topic: req.Topic})
		sources = s.EnrichWithSummaries(ctx, sources, req.Topic)
	}

	return &models.GenerationResult{
		ID:         common.NewResultID(),
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		QAList:     qaList,
		Sources:    sources,
		Provider:   reply.Provider,
		Model:      reply.Model,
		CreatedAt:  s.now().UTC(),
	}, nil
}

// EnrichWithSummaries attaches one-sentence summaries to sources.
// Any failure returns sources unchanged; the failure is only logged.
func (s *Service) EnrichWithSummaries(ctx context.Context, sources []models.Source, topic string) []models.Source {
	enriched, err := s.summarize(ctx, sources, topic)
	if err != nil {
		var failure *models.EnrichmentFailure
		if !errors.As(err, &failure) {
			failure = &models.EnrichmentFailure{Err: err}
		}
		s.logger.Warn().Err(failure).Int("sources", len(sources)).Msg("Could not generate summaries for sources")
		return sources
	}
	return enriched
}

// summarize runs the enrichment oracle call. The caller unwraps its error to the original input.
func (s *Service) summarize(ctx context.Context, sources []models.Source, topic string) ([]models.Source, error) {
	if len(sources) == 0 {
		return sources, nil
	}

	reply, err := s.oracle.Generate(ctx, BuildSummaryPrompt(topic, sources))
	if err != nil {
		return nil, &models.EnrichmentFailure{Err: err}
	}

	summaries, err := parser.ParseSummaries(reply.Text)
	if err != nil {
		return nil, &models.EnrichmentFailure{Err: err}
	}

	return parser.ApplySummaries(sources, summaries), nil
}

// Current returns the last successful result
func (s *Service) Current() (*models.GenerationResult, bool) {
	return s.session.Current()
}

// Clear discards the current result
func (s *Service) Clear() {
	s.session.Clear()
}

// InFlight reports whether a generation is running
func (s *Service) InFlight() bool {
	return s.session.InFlight()
}

func (s *Service) publish(event models.StatusEvent) {
	if s.publisher == nil {
		return
	}
	event.Time = s.now().UTC()
	s.publisher.PublishStatus(event)
}

package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/common"
	"github.com/ternarybob/qanda/internal/interfaces"
	"github.com/ternarybob/qanda/internal/models"
	"google.golang.org/genai"
)

// GeminiOracle answers prompts with Gemini using Google Search grounding.
// Grounding chunks on the first candidate become the reply citations.
type GeminiOracle struct {
	config *common.GeminiConfig
	logger arbor.ILogger
	client *genai.Client
}

// Compile-time assertion
var _ interfaces.Oracle = (*GeminiOracle)(nil)

// NewGeminiOracle creates a Gemini client from configuration
func NewGeminiOracle(ctx context.Context, config *common.GeminiConfig, logger arbor.ILogger) (*GeminiOracle, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set gemini.api_key, QANDA_GEMINI_API_KEY or GEMINI_API_KEY)")
	}
	if config.Model == "" {
		config.Model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.Info().
		Str("model", config.Model).
		Msg("Gemini oracle initialized")

	return &GeminiOracle{
		config: config,
		logger: logger,
		client: client,
	}, nil
}

// Generate sends the prompt with the Google Search tool enabled
func (o *GeminiOracle) Generate(ctx context.Context, prompt string) (*models.OracleReply, error) {
	if o.client == nil {
		return nil, fmt.Errorf("genai client is not initialized")
	}

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
	if o.config.Temperature > 0 {
		config.Temperature = genai.Ptr(o.config.Temperature)
	}

	start := time.Now()
	resp, err := o.client.Models.GenerateContent(
		ctx,
		o.config.Model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		config,
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini API")
	}

	reply := &models.OracleReply{
		Text:      resp.Text(),
		Citations: citationsFromResponse(resp),
		Provider:  string(common.OracleProviderGemini),
		Model:     o.config.Model,
	}

	o.logger.Debug().
		Int("response_length", len(reply.Text)).
		Int("citations", len(reply.Citations)).
		Dur("duration", time.Since(start)).
		Msg("Gemini reply received")

	return reply, nil
}

// citationsFromResponse reads web grounding chunks from the first candidate.
// Records are returned unfiltered; dedup and validation belong to the parser.
func citationsFromResponse(resp *genai.GenerateContentResponse) []models.Citation {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}

	gm := resp.Candidates[0].GroundingMetadata
	if gm == nil {
		return nil
	}

	citations := make([]models.Citation, 0, len(gm.GroundingChunks))
	for _, chunk := range gm.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		citations = append(citations, models.Citation{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	return citations
}

// Provider returns "gemini"
func (o *GeminiOracle) Provider() string {
	return string(common.OracleProviderGemini)
}

// Close clears the client reference (genai.Client doesn't require explicit Close)
func (o *GeminiOracle) Close() error {
	o.client = nil
	return nil
}

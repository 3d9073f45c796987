package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/common"
	"github.com/ternarybob/qanda/internal/interfaces"
	"github.com/ternarybob/qanda/internal/models"
)

// ClaudeOracle answers prompts with Anthropic Claude.
// Claude replies carry no grounding metadata, so results have no sources.
type ClaudeOracle struct {
	config *common.ClaudeConfig
	logger arbor.ILogger
	client anthropic.Client
}

var _ interfaces.Oracle = (*ClaudeOracle)(nil)

// NewClaudeOracle creates an Anthropic client from configuration
func NewClaudeOracle(config *common.ClaudeConfig, logger arbor.ILogger) (*ClaudeOracle, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required (set claude.api_key, QANDA_CLAUDE_API_KEY or ANTHROPIC_API_KEY)")
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = 8192
	}

	logger.Info().
		Str("model", config.Model).
		Int("max_tokens", config.MaxTokens).
		Msg("Claude oracle initialized")

	return &ClaudeOracle{
		config: config,
		logger: logger,
		client: anthropic.NewClient(option.WithAPIKey(config.APIKey)),
	}, nil
}

// Generate sends the prompt as a single user message
func (o *ClaudeOracle) Generate(ctx context.Context, prompt string) (*models.OracleReply, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(o.config.Model),
		MaxTokens: int64(o.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if o.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(o.config.Temperature))
	}

	resp, err := o.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("claude messages.new: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return nil, fmt.Errorf("empty response from Claude API")
	}

	return &models.OracleReply{
		Text:     text.String(),
		Provider: string(common.OracleProviderClaude),
		Model:    o.config.Model,
	}, nil
}

// Provider returns "claude"
func (o *ClaudeOracle) Provider() string {
	return string(common.OracleProviderClaude)
}

// Close is a no-op; the Anthropic client holds no resources
func (o *ClaudeOracle) Close() error {
	return nil
}

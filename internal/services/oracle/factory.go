package oracle

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/common"
	"github.com/ternarybob/qanda/internal/interfaces"
)

// New creates the configured oracle provider wrapped with pacing and timeout
func New(ctx context.Context, config *common.Config, logger arbor.ILogger) (interfaces.Oracle, error) {
	interval, err := common.ParseOptionalDuration(config.Oracle.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("oracle.rate_limit: %w", err)
	}
	timeout, err := common.ParseOptionalDuration(config.Oracle.Timeout)
	if err != nil {
		return nil, fmt.Errorf("oracle.timeout: %w", err)
	}

	var provider interfaces.Oracle
	switch config.Oracle.Provider {
	case common.OracleProviderGemini, "":
		provider, err = NewGeminiOracle(ctx, &config.Gemini, logger)
	case common.OracleProviderClaude:
		provider, err = NewClaudeOracle(&config.Claude, logger)
	default:
		return nil, fmt.Errorf("unsupported oracle provider '%s': must be 'gemini' or 'claude'", config.Oracle.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("provider", provider.Provider()).
		Dur("rate_limit", interval).
		Dur("timeout", timeout).
		Msg("Oracle ready")

	return NewPacedOracle(provider, interval, timeout, logger), nil
}

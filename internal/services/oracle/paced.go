package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/interfaces"
	"github.com/ternarybob/qanda/internal/models"
	"golang.org/x/time/rate"
)

// PacedOracle wraps an Oracle with outbound call pacing and an optional per-call timeout.
// It never retries: a failed call is returned to the caller as-is.
type PacedOracle struct {
	next    interfaces.Oracle
	limiter *rate.Limiter
	timeout time.Duration
	logger  arbor.ILogger
}

var _ interfaces.Oracle = (*PacedOracle)(nil)

// NewPacedOracle wraps next. interval <= 0 disables pacing; timeout <= 0 disables the local timeout.
func NewPacedOracle(next interfaces.Oracle, interval, timeout time.Duration, logger arbor.ILogger) *PacedOracle {
	p := &PacedOracle{
		next:    next,
		timeout: timeout,
		logger:  logger,
	}
	if interval > 0 {
		p.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return p
}

// Generate waits for the limiter, applies the timeout, then delegates
func (p *PacedOracle) Generate(ctx context.Context, prompt string) (*models.OracleReply, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	reply, err := p.next.Generate(ctx, prompt)
	if err != nil {
		if IsRateLimitError(err) {
			p.logger.Warn().
				Str("provider", p.next.Provider()).
				Dur("suggested_delay", ExtractRetryDelay(err)).
				Msg("Oracle rate limited")
		}
		return nil, err
	}
	return reply, nil
}

// Provider returns the wrapped provider name
func (p *PacedOracle) Provider() string {
	return p.next.Provider()
}

// Close closes the wrapped oracle
func (p *PacedOracle) Close() error {
	return p.next.Close()
}

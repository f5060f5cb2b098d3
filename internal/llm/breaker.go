package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig tunes BreakerProvider.
type BreakerConfig struct {
	// Failures is how many consecutive failures open the breaker.
	Failures uint32
	// Timeout is how long the breaker stays open before letting one
	// request through.
	Timeout time.Duration
}

// DefaultBreakerConfig opens after five straight failures for 30s.
var DefaultBreakerConfig = BreakerConfig{Failures: 5, Timeout: 30 * time.Second}

// BreakerProvider stops calling a failing provider for a while so that
// requests fail fast instead of queueing behind timeouts.
type BreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps provider with a circuit breaker.
func NewBreakerProvider(provider Provider, cfg BreakerConfig, logger *zap.Logger) *BreakerProvider {
	if cfg.Failures == 0 {
		cfg.Failures = DefaultBreakerConfig.Failures
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultBreakerConfig.Timeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        provider.Name(),
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("llm circuit breaker state changed",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// A caller hanging up says nothing about the provider's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &BreakerProvider{provider: provider, cb: cb}
}

func (b *BreakerProvider) Name() string {
	return b.provider.Name()
}

func (b *BreakerProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.provider.Complete(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return out.(*CompletionResponse), nil
}

// State reports the breaker state, for health output.
func (b *BreakerProvider) State() string {
	return b.cb.State().String()
}

// IsOpen reports whether err came from an open or saturated breaker
// rather than from the provider.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

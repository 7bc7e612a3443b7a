package resilience

import (
	"errors"
	"time"

	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/sony/gobreaker"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

// withDefaults fills unset values: trip after 5 consecutive failures, stay
// open 30s, then let 2 trial requests through.
func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = 5
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 30 * time.Second
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = 2
	}
	return c
}

// Breaker guards a dependency. Only errors reported by isFailure count
// towards tripping; other errors pass through as successful calls.
type Breaker struct {
	cb      *gobreaker.CircuitBreaker
	enabled bool
}

func NewBreaker(name string, cfg CircuitBreakerConfig, isFailure func(error) bool, logger *logging.Logger) *Breaker {
	if logger == nil {
		logger = logging.Default()
	}
	if isFailure == nil {
		isFailure = func(err error) bool { return err != nil }
	}
	cfg = cfg.withDefaults()
	threshold := uint32(cfg.FailureThreshold)

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(cfg.HalfOpenMaxReq),
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !isFailure(err)
		},
	})

	return &Breaker{cb: cb, enabled: cfg.Enabled}
}

func (b *Breaker) State() string {
	if b == nil || !b.enabled {
		return "disabled"
	}
	return b.cb.State().String()
}

// Execute runs fn through the breaker. An open breaker surfaces as
// ErrCircuitOpen without calling fn.
func Execute[T any](b *Breaker, fn func() (T, error)) (T, error) {
	if b == nil || !b.enabled {
		return fn()
	}

	out, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		var zero T
		return zero, ErrCircuitOpen
	}
	value, _ := out.(T)
	return value, err
}

package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/piresc/antar/internal/pkg/logger"
)

// ErrCircuitBreakerOpen is returned while a breaker rejects calls
var ErrCircuitBreakerOpen = errors.New("circuit breaker is open")

// State of a breaker
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config tunes a Breaker
type Config struct {
	Name string
	// FailureThreshold consecutive failures open the breaker
	FailureThreshold uint32
	// Cooldown is how long an open breaker rejects calls before one trial call is let through
	Cooldown time.Duration
	// Ignore reports errors that say nothing about the dependency, such as the caller giving up
	Ignore        func(ctx context.Context, err error) bool
	OnStateChange func(name string, from, to State)
	Clock         func() time.Time
}

// DefaultConfig returns the settings used for the zone catalog
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		FailureThreshold: 5,
		Cooldown:         30 * time.Second,
		Ignore:           CallerGaveUp,
	}
}

// CallerGaveUp ignores errors caused by the caller's own context ending
func CallerGaveUp(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) || ctx.Err() != nil
}

// Breaker stops calling a failing dependency until a cooldown has passed.
// After the cooldown a single trial call decides whether it closes again.
type Breaker struct {
	cfg Config
	log *logger.ZapLogger

	mu            sync.Mutex
	state         State
	failures      uint32
	totalFailures uint32
	openedAt      time.Time
	trialRunning  bool
}

// New builds a closed breaker; l may be nil
func New(cfg Config, l *logger.ZapLogger) *Breaker {
	if l == nil {
		l = logger.NewNopLogger()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 1
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Ignore == nil {
		cfg.Ignore = func(context.Context, error) bool { return false }
	}
	return &Breaker{cfg: cfg, log: l}
}

// Execute runs fn unless the breaker is open
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	trial, err := b.admit()
	if err != nil {
		return err
	}
	err = fn(ctx)
	b.record(ctx, err, trial)
	return err
}

// Read runs fn through b. While b is open the fallback answers instead;
// with a nil fallback the caller gets ErrCircuitBreakerOpen.
func Read[T any](ctx context.Context, b *Breaker, fn, fallback func(context.Context) (T, error)) (T, error) {
	var out T
	err := b.Execute(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	if errors.Is(err, ErrCircuitBreakerOpen) && fallback != nil {
		logger.WarnCtx(ctx, "Circuit open, serving fallback", logger.String("breaker", b.cfg.Name))
		return fallback(ctx)
	}
	return out, err
}

func (b *Breaker) admit() (trial bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.cfg.Clock().Sub(b.openedAt) < b.cfg.Cooldown {
			return false, ErrCircuitBreakerOpen
		}
		b.transition(StateHalfOpen)
	case StateHalfOpen:
		if b.trialRunning {
			return false, ErrCircuitBreakerOpen
		}
	default:
		return false, nil
	}
	b.trialRunning = true
	return true, nil
}

func (b *Breaker) record(ctx context.Context, err error, trial bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if trial {
		b.trialRunning = false
	}

	switch {
	case err == nil:
		b.failures = 0
		if trial {
			b.transition(StateClosed)
		}
	case b.cfg.Ignore(ctx, err):
	default:
		b.failures++
		b.totalFailures++
		if trial || (b.state == StateClosed && b.failures >= b.cfg.FailureThreshold) {
			b.openedAt = b.cfg.Clock()
			b.transition(StateOpen)
		}
	}
}

func (b *Breaker) transition(to State) {
	from := b.state
	if from == to {
		return
	}
	b.state = to

	b.log.Info("Circuit breaker state changed",
		logger.String("name", b.cfg.Name),
		logger.String("from", from.String()),
		logger.String("to", to.String()),
		logger.Uint32("consecutive_failures", b.failures))

	if b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(b.cfg.Name, from, to)
	}
}

// State returns the current state
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Name returns the configured name
func (b *Breaker) Name() string {
	return b.cfg.Name
}

// Stats is a point-in-time view of a breaker, exposed on the detailed health endpoint
type Stats struct {
	Name                string `json:"name"`
	State               string `json:"state"`
	TotalFailures       uint32 `json:"total_failures"`
	ConsecutiveFailures uint32 `json:"consecutive_failures"`
}

// Stats returns a snapshot of the breaker
func (b *Breaker) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		Name:                b.cfg.Name,
		State:               b.state.String(),
		TotalFailures:       b.totalFailures,
		ConsecutiveFailures: b.failures,
	}
}

// CheckHealth reports the breaker as unhealthy while it is open
func (b *Breaker) CheckHealth(_ context.Context) error {
	if b.State() == StateOpen {
		return ErrCircuitBreakerOpen
	}
	return nil
}

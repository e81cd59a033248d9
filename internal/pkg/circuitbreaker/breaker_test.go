package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCatalogDown = errors.New("catalog down")

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestBreaker(t *testing.T) (*Breaker, *fakeClock, *[]string) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)}
	var transitions []string

	cfg := DefaultConfig("zone-catalog")
	cfg.FailureThreshold = 2
	cfg.Cooldown = time.Minute
	cfg.Clock = clock.Now
	cfg.OnStateChange = func(_ string, from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	}
	return New(cfg, nil), clock, &transitions
}

func failing(context.Context) error { return errCatalogDown }

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b, _, _ := newTestBreaker(t)
	ctx := context.Background()

	assert.ErrorIs(t, b.Execute(ctx, failing), errCatalogDown)
	assert.Equal(t, StateClosed, b.State())
	assert.ErrorIs(t, b.Execute(ctx, failing), errCatalogDown)
	assert.Equal(t, StateOpen, b.State())

	called := false
	err := b.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
	assert.False(t, called)
	assert.ErrorIs(t, b.CheckHealth(ctx), ErrCircuitBreakerOpen)
}

func TestBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	b, _, _ := newTestBreaker(t)
	ctx := context.Background()

	_ = b.Execute(ctx, failing)
	require.NoError(t, b.Execute(ctx, func(context.Context) error { return nil }))
	_ = b.Execute(ctx, failing)

	assert.Equal(t, StateClosed, b.State())
	stats := b.Stats()
	assert.Equal(t, uint32(2), stats.TotalFailures)
	assert.Equal(t, uint32(1), stats.ConsecutiveFailures)
}

func TestBreaker_TrialAfterCooldown(t *testing.T) {
	t.Run("successful trial closes", func(t *testing.T) {
		b, clock, transitions := newTestBreaker(t)
		ctx := context.Background()
		_ = b.Execute(ctx, failing)
		_ = b.Execute(ctx, failing)

		clock.Advance(30 * time.Second)
		assert.ErrorIs(t, b.Execute(ctx, failing), ErrCircuitBreakerOpen)

		clock.Advance(31 * time.Second)
		assert.NoError(t, b.Execute(ctx, func(context.Context) error { return nil }))
		assert.Equal(t, StateClosed, b.State())
		assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, *transitions)
		assert.NoError(t, b.CheckHealth(ctx))
	})

	t.Run("failed trial reopens", func(t *testing.T) {
		b, clock, _ := newTestBreaker(t)
		ctx := context.Background()
		_ = b.Execute(ctx, failing)
		_ = b.Execute(ctx, failing)

		clock.Advance(time.Minute)
		assert.ErrorIs(t, b.Execute(ctx, failing), errCatalogDown)
		assert.Equal(t, StateOpen, b.State())
		assert.ErrorIs(t, b.Execute(ctx, failing), ErrCircuitBreakerOpen)
	})

	t.Run("one trial at a time", func(t *testing.T) {
		b, clock, _ := newTestBreaker(t)
		ctx := context.Background()
		_ = b.Execute(ctx, failing)
		_ = b.Execute(ctx, failing)
		clock.Advance(time.Minute)

		err := b.Execute(ctx, func(context.Context) error {
			assert.Equal(t, StateHalfOpen, b.State())
			assert.ErrorIs(t, b.Execute(ctx, failing), ErrCircuitBreakerOpen)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, StateClosed, b.State())
	})
}

func TestBreaker_CallerGivingUpIsNotAFailure(t *testing.T) {
	b, _, _ := newTestBreaker(t)

	for i := 0; i < 5; i++ {
		_ = b.Execute(context.Background(), func(context.Context) error { return context.Canceled })
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	for i := 0; i < 5; i++ {
		_ = b.Execute(ctx, func(ctx context.Context) error { return ctx.Err() })
	}

	assert.Equal(t, StateClosed, b.State())
	stats := b.Stats()
	assert.Equal(t, "zone-catalog", stats.Name)
	assert.Equal(t, "closed", stats.State)
	assert.Equal(t, uint32(0), stats.TotalFailures)
}

func TestRead(t *testing.T) {
	fromFile := func(context.Context) ([]string, error) { return []string{"z-file"}, nil }
	fromDB := func(context.Context) ([]string, error) { return nil, errCatalogDown }

	t.Run("serves the primary while closed", func(t *testing.T) {
		b, _, _ := newTestBreaker(t)
		got, err := Read(context.Background(), b,
			func(context.Context) ([]string, error) { return []string{"z-db"}, nil }, fromFile)
		require.NoError(t, err)
		assert.Equal(t, []string{"z-db"}, got)
	})

	t.Run("primary errors are returned while closed", func(t *testing.T) {
		b, _, _ := newTestBreaker(t)
		_, err := Read(context.Background(), b, fromDB, fromFile)
		assert.ErrorIs(t, err, errCatalogDown)
	})

	t.Run("fallback answers while open", func(t *testing.T) {
		b, _, _ := newTestBreaker(t)
		ctx := context.Background()
		_, _ = Read(ctx, b, fromDB, fromFile)
		_, _ = Read(ctx, b, fromDB, fromFile)

		got, err := Read(ctx, b, fromDB, fromFile)
		require.NoError(t, err)
		assert.Equal(t, []string{"z-file"}, got)
	})

	t.Run("no fallback surfaces open", func(t *testing.T) {
		b, _, _ := newTestBreaker(t)
		ctx := context.Background()
		_, _ = Read(ctx, b, fromDB, nil)
		_, _ = Read(ctx, b, fromDB, nil)

		_, err := Read(ctx, b, fromDB, nil)
		assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
	})
}

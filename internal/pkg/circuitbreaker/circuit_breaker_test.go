package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errTest = errors.New("test error")

// fakeClock позволяет двигать время без time.Sleep
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(clock *fakeClock) *CircuitBreaker {
	cb := NewCircuitBreaker(Config{
		Name:             "test",
		FailureThreshold: 3,
		ResetTimeout:     time.Second,
		HalfOpenMaxCalls: 2,
		SuccessThreshold: 2,
	})
	cb.now = clock.now
	return cb
}

func trip(cb *CircuitBreaker) {
	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errTest })
	}
}

func TestCircuitBreaker_StateClosed(t *testing.T) {
	cb := newTestBreaker(&fakeClock{t: time.Now()})
	assert.Equal(t, StateClosed, cb.State())

	for i := 0; i < 5; i++ {
		assert.NoError(t, cb.Execute(func() error { return nil }))
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.True(t, cb.IsHealthy())
}

func TestCircuitBreaker_FailuresBelowThresholdAreForgiven(t *testing.T) {
	cb := newTestBreaker(&fakeClock{t: time.Now()})

	_ = cb.Execute(func() error { return errTest })
	_ = cb.Execute(func() error { return errTest })
	_ = cb.Execute(func() error { return nil })
	_ = cb.Execute(func() error { return errTest })

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_StateOpen(t *testing.T) {
	cb := newTestBreaker(&fakeClock{t: time.Now()})
	trip(cb)

	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.IsHealthy())

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called, "open breaker must not call the function")
}

func TestCircuitBreaker_StateHalfOpen(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	cb := newTestBreaker(clock)
	trip(cb)

	clock.advance(1500 * time.Millisecond)

	for i := 0; i < 2; i++ {
		assert.NoError(t, cb.Execute(func() error { return nil }))
	}
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailure(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	cb := newTestBreaker(clock)
	trip(cb)

	clock.advance(1500 * time.Millisecond)

	err := cb.Execute(func() error { return errTest })
	assert.ErrorIs(t, err, errTest)
	assert.Equal(t, StateOpen, cb.State())
}

func TestRegistry_SeparatesKeys(t *testing.T) {
	reg := NewRegistry(Config{Name: "logos", FailureThreshold: 1, ResetTimeout: time.Minute})

	_ = reg.Get("bad.example").Execute(func() error { return errTest })

	assert.Equal(t, StateOpen, reg.Get("bad.example").State())
	assert.Equal(t, StateClosed, reg.Get("good.example").State())
	assert.Same(t, reg.Get("bad.example"), reg.Get("bad.example"))

	states := reg.States()
	assert.Len(t, states, 2)
	assert.Equal(t, StateOpen, states["bad.example"])
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Closed", StateClosed.String())
	assert.Equal(t, "Open", StateOpen.String())
	assert.Equal(t, "HalfOpen", StateHalfOpen.String())
	assert.Equal(t, "Unknown", State(42).String())
}

package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerTransitions(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Minute})
	cb.now = func() time.Time { return now }

	relayDown := errors.New("dial tcp: connection refused")
	fail := func() error { return relayDown }
	calls := 0
	succeed := func() error { calls++; return nil }

	assert.ErrorIs(t, cb.Execute(fail), relayDown)
	assert.Equal(t, CBClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(fail), relayDown)
	assert.Equal(t, CBOpen, cb.State())

	assert.ErrorIs(t, cb.Execute(succeed), ErrCircuitOpen)
	assert.Zero(t, calls)

	now = now.Add(time.Minute)
	assert.Equal(t, CBHalfOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(fail), relayDown)
	assert.Equal(t, CBOpen, cb.State(), "failed trial reopens")

	now = now.Add(time.Minute)
	assert.NoError(t, cb.Execute(succeed))
	assert.Equal(t, CBClosed, cb.State())
	assert.Equal(t, 1, calls)
}

func TestCircuitBreakerHalfOpenAdmitsOneCaller(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 1, OpenTimeout: time.Minute})
	cb.now = func() time.Time { return now }

	assert.Error(t, cb.Execute(func() error { return errors.New("relay down") }))
	now = now.Add(time.Minute)
	require.Equal(t, CBHalfOpen, cb.State())

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- cb.Execute(func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	second := false
	assert.ErrorIs(t, cb.Execute(func() error { second = true; return nil }), ErrCircuitOpen)
	assert.False(t, second, "second caller must not reach the relay while the trial runs")

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, CBClosed, cb.State())
	assert.NoError(t, cb.Execute(func() error { return nil }))
}

func TestCircuitBreakerRunsTrialsInSequence(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: time.Minute})
	cb.now = func() time.Time { return now }
	ok := func() error { return nil }

	assert.Error(t, cb.Execute(func() error { return errors.New("relay down") }))
	now = now.Add(time.Minute)

	assert.NoError(t, cb.Execute(ok))
	assert.Equal(t, CBHalfOpen, cb.State(), "one success of two keeps it half-open")
	assert.NoError(t, cb.Execute(ok), "finished trial frees the slot")
	assert.Equal(t, CBClosed, cb.State())
}

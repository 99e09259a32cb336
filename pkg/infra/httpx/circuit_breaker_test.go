package httpx

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_PassesThroughSuccess(t *testing.T) {
	cb := NewCircuitBreaker("test", time.Second, 3)

	err := cb.Execute(func() error { return nil })
	require.NoError(t, err)
}

func TestCircuitBreaker_WrapsFailure(t *testing.T) {
	cb := NewCircuitBreaker("engine", time.Second, 3)

	sentinel := errors.New("engine unreachable")
	err := cb.Execute(func() error { return sentinel })
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "engine")
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", time.Minute, 2)

	fail := func() error { return errors.New("down") }
	_ = cb.Execute(fail)
	_ = cb.Execute(fail)

	calls := 0
	err := cb.Execute(func() error {
		calls++
		return nil
	})
	require.Error(t, err, "breaker must be open after consecutive failures")
	assert.ErrorIs(t, err, ErrEngineUnavailable)
	assert.Zero(t, calls, "open breaker must not invoke the function")
}

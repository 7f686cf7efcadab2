package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(5), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	base := errors.New("always failing")
	calls := 0
	err := Do(context.Background(), fastConfig(3), func() error {
		calls++
		return base
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestDo_NonRetryableStopsImmediately(t *testing.T) {
	base := errors.New("bad input")
	calls := 0
	err := Do(context.Background(), fastConfig(5), func() error {
		calls++
		return NonRetryable(base)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, base)
	assert.True(t, IsNonRetryable(err))
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := Do(ctx, fastConfig(10), func() error {
		calls++
		cancel()
		return errors.New("failing")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_InvalidDelayBounds(t *testing.T) {
	cfg := Config{
		MaxAttempts:  2,
		InitialDelay: time.Second,
		MaxDelay:     time.Millisecond,
		Multiplier:   2.0,
	}
	err := Do(context.Background(), cfg, func() error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MaxDelay")
}

func TestDo_ZeroConfigRunsOnce(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Config{}, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoWithResult(t *testing.T) {
	calls := 0
	got, err := DoWithResult(context.Background(), fastConfig(3), func() (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("not yet")
		}
		return "value", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestNonRetryable_Nil(t *testing.T) {
	assert.Nil(t, NonRetryable(nil))
	assert.False(t, IsNonRetryable(nil))
}

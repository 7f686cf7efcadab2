package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Format(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(base, "Page", "Sync", "batch delivery")
	assert.Equal(t, "Page.Sync: batch delivery failed: boom", err.Error())
	assert.ErrorIs(t, err, base)

	assert.Nil(t, Wrap(nil, "Page", "Sync", "anything"))
}

func TestWrapClassified(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name  string
		wrap  func(error, string, string, string) error
		class ErrorClass
	}{
		{name: "transient", wrap: WrapTransient, class: ErrorTransient},
		{name: "invalid", wrap: WrapInvalid, class: ErrorInvalid},
		{name: "fatal", wrap: WrapFatal, class: ErrorFatal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.wrap(base, "Comp", "Method", "action")
			require.Error(t, err)
			assert.ErrorIs(t, err, base)

			var ce *ClassifiedError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tc.class, ce.Class)
			assert.Equal(t, "Comp", ce.Component)

			assert.Nil(t, tc.wrap(nil, "Comp", "Method", "action"))
		})
	}
}

func TestClassification(t *testing.T) {
	assert.True(t, IsTransient(ErrConnectionLost))
	assert.True(t, IsTransient(fmt.Errorf("wrapped: %w", ErrConnectionTimeout)))
	assert.True(t, IsTransient(context.DeadlineExceeded))
	assert.False(t, IsTransient(nil))

	assert.True(t, IsFatal(ErrInvalidConfig))
	assert.True(t, IsFatal(ErrRegistryClosed))
	assert.False(t, IsFatal(ErrConnectionLost))
	assert.False(t, IsFatal(nil))

	assert.True(t, IsInvalid(WrapInvalid(errors.New("bad"), "c", "m", "a")))
	assert.False(t, IsInvalid(errors.New("bad")))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ErrorFatal, Classify(ErrMissingConfig))
	assert.Equal(t, ErrorInvalid, Classify(WrapInvalid(errors.New("bad"), "c", "m", "a")))
	// Unknown errors default to transient so callers may retry.
	assert.Equal(t, ErrorTransient, Classify(errors.New("mystery")))
}

func TestErrorClass_String(t *testing.T) {
	assert.Equal(t, "transient", ErrorTransient.String())
	assert.Equal(t, "invalid", ErrorInvalid.String())
	assert.Equal(t, "fatal", ErrorFatal.String())
	assert.Equal(t, "unknown", ErrorClass(99).String())
}

func TestRetryConfigBridge(t *testing.T) {
	rc := RetryConfig{
		MaxRetries:    4,
		InitialDelay:  50 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 1.5,
	}

	cfg := rc.ToRetryConfig()
	assert.Equal(t, 5, cfg.MaxAttempts) // retries + initial attempt
	assert.Equal(t, 50*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 2*time.Second, cfg.MaxDelay)
	assert.Equal(t, 1.5, cfg.Multiplier)
	assert.True(t, cfg.AddJitter)
}

package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(maxAttempts int) Config {
	return Config{
		MaxAttempts:  maxAttempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1.0,
	}
}

func TestDoWithResultSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result, err := DoWithResult(context.Background(), func() (string, error) {
		calls++
		return "ok", nil
	}, testConfig(3))

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestDoWithResultRetriesUntilSuccess(t *testing.T) {
	calls := 0
	result, err := DoWithResult(context.Background(), func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	}, testConfig(3))

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 3, calls)
}

func TestDoWithResultExhaustsAttempts(t *testing.T) {
	calls := 0
	transient := errors.New("transient")
	_, err := DoWithResult(context.Background(), func() (int, error) {
		calls++
		return 0, transient
	}, testConfig(3))

	require.Error(t, err)
	assert.Equal(t, transient, err)
	assert.Equal(t, 3, calls)
}

func TestDoWithResultStopsOnNonRetryableError(t *testing.T) {
	calls := 0
	cfg := testConfig(3).WithRetryIf(SkipPermanent)

	_, err := DoWithResult(context.Background(), func() (int, error) {
		calls++
		return 0, NewPermanent(errors.New("bad input"))
	}, cfg)

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, IsPermanent(err))
}

func TestDoWithResultRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	cfg := Config{
		MaxAttempts:  5,
		InitialDelay: 10 * time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   1.0,
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := DoWithResult(ctx, func() (int, error) {
		calls++
		return 0, errors.New("transient")
	}, cfg)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDoWithResultZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_, err := DoWithResult(context.Background(), func() (int, error) {
		calls++
		return 0, errors.New("boom")
	}, testConfig(0))

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestPermanent(t *testing.T) {
	t.Run("wraps and unwraps", func(t *testing.T) {
		cause := errors.New("cause")
		err := NewPermanent(cause)

		assert.True(t, IsPermanent(err))
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "cause", err.Error())
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, NewPermanent(nil))
	})

	t.Run("plain errors are not permanent", func(t *testing.T) {
		assert.False(t, IsPermanent(errors.New("x")))
	})
}

func TestSkipPermanent(t *testing.T) {
	assert.False(t, SkipPermanent(NewPermanent(errors.New("x"))))
	assert.True(t, SkipPermanent(errors.New("x")))
}

func TestConfigBuilders(t *testing.T) {
	cfg := DefaultConfig.WithMaxAttempts(5).WithRetryIf(SkipPermanent)

	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.NotNil(t, cfg.RetryIf)
	// The source config is unchanged.
	assert.Equal(t, 2, DefaultConfig.MaxAttempts)
	assert.Nil(t, DefaultConfig.RetryIf)
}

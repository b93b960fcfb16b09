package poll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUntilFirstProbeDone(t *testing.T) {
	calls := 0
	probe := func(ctx context.Context) (string, bool, error) {
		calls++
		return "done", true, nil
	}

	start := time.Now()
	result, err := Until(context.Background(), probe, time.Hour, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, "done", result)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), time.Second, "first probe must not wait for the interval")
}

func TestUntilCompletesAfterPending(t *testing.T) {
	const pending = 3

	calls := 0
	probe := func(ctx context.Context) (int, bool, error) {
		calls++
		if calls <= pending {
			return 0, false, nil
		}
		return 42, true, nil
	}

	result, err := Until(context.Background(), probe, time.Millisecond, time.Second)
	require.NoError(t, err)

	assert.Equal(t, 42, result)
	assert.Equal(t, pending+1, calls)
}

func TestUntilTimeout(t *testing.T) {
	calls := 0
	probe := func(ctx context.Context) (string, bool, error) {
		calls++
		return "", false, nil
	}

	result, err := Until(context.Background(), probe, 5*time.Millisecond, 30*time.Millisecond)

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Empty(t, result)
	assert.GreaterOrEqual(t, calls, 1, "the probe runs at least once before timing out")
}

func TestUntilProbeErrorAborts(t *testing.T) {
	probeErr := errors.New("upstream unreachable")

	calls := 0
	probe := func(ctx context.Context) (string, bool, error) {
		calls++
		return "", false, probeErr
	}

	_, err := Until(context.Background(), probe, time.Millisecond, time.Second)

	assert.ErrorIs(t, err, probeErr)
	assert.Equal(t, 1, calls, "errors are not retried")
}

func TestUntilContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	probe := func(ctx context.Context) (string, bool, error) {
		cancel()
		return "", false, nil
	}

	_, err := Until(ctx, probe, time.Hour, time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
}

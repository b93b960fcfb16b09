// Package poll drives a probe function at a fixed interval until it reports
// completion or a deadline elapses.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned when the probe never reports done within the
// configured budget. Wrapped in the returned error; match with errors.Is.
var ErrTimeout = errors.New("polling timed out")

// Probe performs one unit of work. done reports whether result carries the
// final payload; a non-nil error aborts the loop immediately without being
// retried.
type Probe[T any] func(ctx context.Context) (result T, done bool, err error)

// Until invokes probe every interval until it reports done, the timeout
// elapses, or ctx is cancelled. The first invocation happens immediately.
//
// The deadline is computed once at entry, so the wall-clock bound is
// deterministic. It is checked between the probe call and the wait, not
// around the probe itself: probe latency is additive to the budget, which is
// immaterial at the second-scale intervals this is used with. No backoff is
// applied; the target is a low-frequency status endpoint.
//
// Cancellation takes effect at the wait boundary, so its latency is bounded
// by one interval.
func Until[T any](ctx context.Context, probe Probe[T], interval, timeout time.Duration) (T, error) {
	var zero T
	deadline := time.Now().Add(timeout)

	for {
		result, done, err := probe(ctx)
		if err != nil {
			return zero, err
		}
		if done {
			return result, nil
		}
		if !time.Now().Before(deadline) {
			return zero, fmt.Errorf("no terminal result within %s: %w", timeout, ErrTimeout)
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

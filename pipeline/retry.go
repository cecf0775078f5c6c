package pipeline

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryOptions configures the retry policy. Zero values select defaults;
// set MaxAttempts to 1 to disable retries entirely.
type RetryOptions struct {
	// MaxAttempts is the maximum number of attempts, including the first.
	MaxAttempts int
	// InitialInterval is the delay before the first retry.
	InitialInterval time.Duration
	// MaxInterval caps the delay between retries.
	MaxInterval time.Duration
	// Multiplier grows the delay after each retry.
	Multiplier float64
	// RandomizationFactor jitters each delay (0.0 to 1.0).
	RandomizationFactor float64
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (o *RetryOptions) ApplyDefaults() {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.InitialInterval <= 0 {
		o.InitialInterval = 100 * time.Millisecond
	}
	if o.MaxInterval <= 0 {
		o.MaxInterval = 10 * time.Second
	}
	if o.Multiplier <= 0 {
		o.Multiplier = 2.0
	}
	if o.RandomizationFactor <= 0 {
		o.RandomizationFactor = 0.1
	}
}

// WithRetry returns a Policy that re-attempts retryable failures with
// exponential backoff. Only errors the classifier marks retryable
// (timeouts, connection failures, 408/429/5xx) are re-attempted, and a
// Retry-After header from the service overrides the computed delay.
func WithRetry(opts RetryOptions) Policy {
	opts.ApplyDefaults()
	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
			if opts.MaxAttempts == 1 {
				return next.Do(ctx, req)
			}

			var lastResp *Response
			var lastErr error

			operation := func() (*Response, error) {
				// Each attempt gets its own copy so per-retry policies
				// never see a previous attempt's header mutations.
				resp, err := next.Do(ctx, req.Clone())
				lastResp, lastErr = resp, err
				if err == nil {
					return resp, nil
				}
				if !IsRetryable(err) {
					return nil, backoff.Permanent(err)
				}
				if resp != nil {
					if d, ok := retryAfter(resp.Header); ok {
						return nil, backoff.RetryAfter(ceilSeconds(d))
					}
				}
				return nil, err
			}

			b := backoff.NewExponentialBackOff()
			b.InitialInterval = opts.InitialInterval
			b.MaxInterval = opts.MaxInterval
			b.Multiplier = opts.Multiplier
			b.RandomizationFactor = opts.RandomizationFactor

			resp, err := backoff.Retry(ctx, operation,
				backoff.WithBackOff(b),
				backoff.WithMaxTries(uint(opts.MaxAttempts)),
			)
			if err != nil {
				// Surface the classified error and any response from the
				// final attempt, not backoff's own wrapper types.
				if ctx.Err() == nil && lastErr != nil {
					return lastResp, lastErr
				}
				return lastResp, err
			}
			return resp, nil
		})
	}
}

// ceilSeconds rounds up to whole seconds so a fractional delay from an
// HTTP-date Retry-After never waits less than the server asked for.
func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// retryAfter parses a Retry-After header as delta-seconds or an HTTP date.
func retryAfter(h http.Header) (time.Duration, bool) {
	v := h.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d, true
		}
	}
	return 0, false
}

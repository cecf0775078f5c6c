package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
)

// Policy transforms a Transport by wrapping it. The returned transport
// typically delegates to the original while adding cross-cutting behavior
// (telemetry, authentication, retry, logging, tracing).
type Policy func(next Transport) Transport

// Chain composes multiple policies into one. Policies are applied in
// order: the first policy is outermost (executes first on the way in,
// last on the way out).
//
// Chain(a, b, c)(transport) is equivalent to a(b(c(transport))).
func Chain(policies ...Policy) Policy {
	return func(inner Transport) Transport {
		for i := len(policies) - 1; i >= 0; i-- {
			inner = policies[i](inner)
		}
		return inner
	}
}

// WithTelemetry returns a Policy that sets the User-Agent header from the
// component name and version the pipeline was constructed with. A caller
// that already set User-Agent wins.
func WithTelemetry(component, version string) Policy {
	ua := fmt.Sprintf("%s/%s (%s; %s)", component, version, runtime.GOOS, runtime.GOARCH)
	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", ua)
			}
			return next.Do(ctx, req)
		})
	}
}

// WithRequestID returns a Policy that sets a unique X-Request-Id header if
// one is not already present. Runs per call, so the ID stays stable across
// retry attempts.
func WithRequestID() Policy {
	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
			if req.Header.Get("X-Request-Id") == "" {
				req.Header.Set("X-Request-Id", uuid.New().String())
			}
			return next.Do(ctx, req)
		})
	}
}

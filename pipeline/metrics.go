package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/skillsenselab/vaultkit/observability"
)

// WithMetrics returns a Policy that records each call on the given
// observability instruments: operation count, duration histogram, and
// errors by classification.
func WithMetrics(metrics *observability.Metrics, service string) Policy {
	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
			start := time.Now()
			resp, err := next.Do(ctx, req)
			duration := time.Since(start)

			operation, ok := OperationFromContext(ctx)
			if !ok {
				operation = req.Method
			}

			status := "ok"
			if err != nil {
				status = "error"
				metrics.RecordError(ctx, classify(err), service)
			}
			metrics.RecordOperation(ctx, service, operation, status, duration)

			return resp, err
		})
	}
}

// classify names an error for the metrics error counter.
func classify(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code.String()
	}
	return "unknown"
}

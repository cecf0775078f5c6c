package pipeline

import (
	"context"
	"time"

	"github.com/skillsenselab/vaultkit/logger"
)

// WithLogging returns a Policy that logs each attempt. Runs per retry
// attempt: one line per request on the wire, not per client call.
func WithLogging(log *logger.Logger) Policy {
	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
			start := time.Now()
			resp, err := next.Do(ctx, req)

			fields := logger.Fields(
				logger.FieldMethod, req.Method,
				logger.FieldURL, req.URL.Redacted(),
				logger.FieldDuration, time.Since(start).Milliseconds(),
			)
			if op, ok := OperationFromContext(ctx); ok {
				fields[logger.FieldOperation] = op
			}
			if resp != nil {
				fields[logger.FieldStatus] = resp.StatusCode
			}

			if err != nil {
				log.Error("request failed", logger.MergeWithError(fields, err))
			} else {
				log.Debug("request ok", fields)
			}
			return resp, err
		})
	}
}

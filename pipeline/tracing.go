package pipeline

import (
	"context"

	"github.com/skillsenselab/vaultkit/observability"
)

// WithTracing returns a Policy that creates an OpenTelemetry span around
// the whole call, retries included. The span is named from the operation
// marker in context, falling back to a generic request span.
func WithTracing() Policy {
	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
			spanName := observability.SpanHTTPRequest
			if op, ok := OperationFromContext(ctx); ok {
				spanName = op
			}

			ctx, span := observability.StartSpan(ctx, spanName)
			defer span.End()

			observability.SetSpanAttribute(ctx, observability.AttrHTTPMethod, req.Method)
			observability.SetSpanAttribute(ctx, observability.AttrHTTPURL, req.URL.Redacted())

			resp, err := next.Do(ctx, req)

			if resp != nil {
				observability.SetSpanAttribute(ctx, observability.AttrHTTPStatusCode, resp.StatusCode)
			}
			if err != nil {
				observability.SetSpanError(ctx, err)
			}
			return resp, err
		})
	}
}

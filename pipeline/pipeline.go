package pipeline

import (
	"context"
	"net/http"

	"github.com/skillsenselab/vaultkit/logger"
	"github.com/skillsenselab/vaultkit/observability"
)

// Options configures pipeline construction. The zero value is usable:
// default transport, default retry, tracing on, no logging or metrics.
type Options struct {
	// HTTPClient backs the terminal transport. Nil selects the default
	// client. Ignored when Transport is set.
	HTTPClient *http.Client

	// Transport fully replaces the terminal transport. Used by tests to
	// capture requests without a network.
	Transport Transport

	// Retry configures the retry policy.
	Retry RetryOptions

	// Logger enables per-attempt request logging. Nil keeps the pipeline
	// quiet, which is the right default for a library.
	Logger *logger.Logger

	// Metrics enables per-call metric recording on the given instruments.
	Metrics *observability.Metrics

	// DisableTracing turns off the per-call tracing policy. When no
	// tracer provider is installed the policy is already a no-op.
	DisableTracing bool
}

// Pipeline is an immutable chain of policies ending in a transport.
// Construct once per client and share across calls.
type Pipeline struct {
	t Transport
}

// New assembles a pipeline for a client module. The module name and
// version are explicit build-time constants supplied by the calling
// package; they feed the telemetry policy's User-Agent.
//
// Policy order: telemetry, request ID, tracing, metrics, the caller's
// per-call policies, retry, the caller's per-retry policies, logging,
// transport.
func New(module, version string, opts *Options, perCall, perRetry []Policy) *Pipeline {
	o := Options{}
	if opts != nil {
		o = *opts
	}

	policies := make([]Policy, 0, len(perCall)+len(perRetry)+6)
	policies = append(policies, WithTelemetry(module, version))
	policies = append(policies, WithRequestID())
	if !o.DisableTracing {
		policies = append(policies, WithTracing())
	}
	if o.Metrics != nil {
		policies = append(policies, WithMetrics(o.Metrics, module))
	}
	policies = append(policies, perCall...)
	policies = append(policies, WithRetry(o.Retry))
	policies = append(policies, perRetry...)
	if o.Logger != nil {
		policies = append(policies, WithLogging(o.Logger))
	}

	transport := o.Transport
	if transport == nil {
		transport = NewHTTPTransport(o.HTTPClient)
	}

	return &Pipeline{t: Chain(policies...)(transport)}
}

// Do sends the request through the policy chain.
func (p *Pipeline) Do(ctx context.Context, req *Request) (*Response, error) {
	return p.t.Do(ctx, req)
}

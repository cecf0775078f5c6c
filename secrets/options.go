package secrets

import (
	"fmt"
	"net/http"

	"github.com/creasty/defaults"

	"github.com/skillsenselab/vaultkit/logger"
	"github.com/skillsenselab/vaultkit/observability"
	"github.com/skillsenselab/vaultkit/pipeline"
)

// ClientOptions configures client construction. The zero value selects
// all defaults; NewClient copies the struct and never retains it.
type ClientOptions struct {
	// APIVersion is the service API version pinned on every request.
	APIVersion string `default:"7.5"`

	// Scopes are the authorization scopes bearer tokens are requested for.
	Scopes []string `default:"[\"https://vault.skillsense.io/.default\"]"`

	// SetSecretMethod is the HTTP method for set-secret calls. The current
	// service contract reads the payload from a GET request body; switch to
	// PUT here when the service corrects that.
	SetSecretMethod string `default:"GET"`

	// Retry configures the pipeline retry policy.
	Retry pipeline.RetryOptions

	// HTTPClient backs the pipeline transport. Nil selects the default.
	HTTPClient *http.Client

	// Transport replaces the terminal transport entirely. Used by tests
	// to capture requests without a network.
	Transport pipeline.Transport

	// Logger enables per-attempt request logging.
	Logger *logger.Logger

	// Metrics enables per-call metric recording.
	Metrics *observability.Metrics

	// DisableTracing turns off the pipeline's tracing policy.
	DisableTracing bool

	// PerCallPolicies run once per call, before the retry policy.
	PerCallPolicies []pipeline.Policy

	// PerRetryPolicies run once per attempt, after the retry policy.
	PerRetryPolicies []pipeline.Policy
}

// resolveOptions copies opts and fills zero-value fields from defaults.
func resolveOptions(opts *ClientOptions) (ClientOptions, error) {
	o := ClientOptions{}
	if opts != nil {
		o = *opts
	}
	if err := defaults.Set(&o); err != nil {
		return ClientOptions{}, fmt.Errorf("secrets: apply option defaults: %w", err)
	}
	return o, nil
}

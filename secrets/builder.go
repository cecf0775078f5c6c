package secrets

import (
	"context"
	"net/http"

	"github.com/skillsenselab/vaultkit/credential"
	"github.com/skillsenselab/vaultkit/logger"
	"github.com/skillsenselab/vaultkit/observability"
	"github.com/skillsenselab/vaultkit/pipeline"
)

// ClientBuilder is the builder shape of client construction. It stages a
// ClientOptions and delegates to NewClient, so both construction shapes
// share one code path.
type ClientBuilder struct {
	endpoint string
	cred     credential.TokenCredential
	opts     ClientOptions
}

// NewClientBuilder starts building a client for the given endpoint.
func NewClientBuilder(endpoint string, cred credential.TokenCredential) *ClientBuilder {
	return &ClientBuilder{endpoint: endpoint, cred: cred}
}

// WithAPIVersion overrides the service API version.
func (b *ClientBuilder) WithAPIVersion(version string) *ClientBuilder {
	b.opts.APIVersion = version
	return b
}

// WithScopes overrides the authorization scopes for bearer tokens.
func (b *ClientBuilder) WithScopes(scopes ...string) *ClientBuilder {
	b.opts.Scopes = scopes
	return b
}

// WithRetry configures the retry policy.
func (b *ClientBuilder) WithRetry(opts pipeline.RetryOptions) *ClientBuilder {
	b.opts.Retry = opts
	return b
}

// WithHTTPClient sets the HTTP client backing the transport.
func (b *ClientBuilder) WithHTTPClient(client *http.Client) *ClientBuilder {
	b.opts.HTTPClient = client
	return b
}

// WithTransport replaces the terminal transport.
func (b *ClientBuilder) WithTransport(t pipeline.Transport) *ClientBuilder {
	b.opts.Transport = t
	return b
}

// WithLogger enables request logging.
func (b *ClientBuilder) WithLogger(log *logger.Logger) *ClientBuilder {
	b.opts.Logger = log
	return b
}

// WithMetrics enables metric recording.
func (b *ClientBuilder) WithMetrics(m *observability.Metrics) *ClientBuilder {
	b.opts.Metrics = m
	return b
}

// WithDisableTracing turns off the pipeline's tracing policy.
func (b *ClientBuilder) WithDisableTracing() *ClientBuilder {
	b.opts.DisableTracing = true
	return b
}

// WithSetSecretMethod overrides the HTTP method for set-secret calls.
func (b *ClientBuilder) WithSetSecretMethod(method string) *ClientBuilder {
	b.opts.SetSecretMethod = method
	return b
}

// WithPerCallPolicies appends policies that run once per call.
func (b *ClientBuilder) WithPerCallPolicies(policies ...pipeline.Policy) *ClientBuilder {
	b.opts.PerCallPolicies = append(b.opts.PerCallPolicies, policies...)
	return b
}

// WithPerRetryPolicies appends policies that run once per attempt.
func (b *ClientBuilder) WithPerRetryPolicies(policies ...pipeline.Policy) *ClientBuilder {
	b.opts.PerRetryPolicies = append(b.opts.PerRetryPolicies, policies...)
	return b
}

// Build constructs the client.
func (b *ClientBuilder) Build() (*Client, error) {
	return NewClient(b.endpoint, b.cred, &b.opts)
}

// SetSecretBuilder is the builder shape of the set-secret call. It stages
// a SetSecretOptions; nothing executes until Send.
type SetSecretBuilder struct {
	client *Client
	name   string
	value  string
	opts   SetSecretOptions
}

// NewSetSecret starts building a set-secret call.
func (c *Client) NewSetSecret(name, value string) *SetSecretBuilder {
	return &SetSecretBuilder{client: c, name: name, value: value}
}

// WithProperties sets the secret's attributes.
func (b *SetSecretBuilder) WithProperties(properties SecretProperties) *SetSecretBuilder {
	b.opts.Properties = &properties
	return b
}

// WithContentType sets the secret's content type.
func (b *SetSecretBuilder) WithContentType(contentType string) *SetSecretBuilder {
	b.opts.ContentType = contentType
	return b
}

// WithTags sets the secret's metadata tags.
func (b *SetSecretBuilder) WithTags(tags map[string]string) *SetSecretBuilder {
	b.opts.Tags = tags
	return b
}

// Send executes the staged call through the same composition path as
// Client.SetSecret.
func (b *SetSecretBuilder) Send(ctx context.Context) (*pipeline.Response, error) {
	return b.client.setSecret(ctx, b.name, b.value, &b.opts)
}

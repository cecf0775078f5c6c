package secrets

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/skillsenselab/vaultkit/credential"
	"github.com/skillsenselab/vaultkit/pipeline"
	"github.com/skillsenselab/vaultkit/validation"
)

// Module identity fed to the pipeline's telemetry policy. Explicit
// constants, bumped on release.
const (
	moduleName    = "vaultkit-secrets"
	moduleVersion = "0.1.0"
)

const operationSetSecret = "SecretClient.SetSecret"

// ErrInvalidEndpoint is returned by client construction when the endpoint
// is not an absolute URL.
var ErrInvalidEndpoint = errors.New("secrets: invalid endpoint")

// Client is the vault secrets service client. It holds the resolved
// endpoint and the request pipeline, both immutable after construction,
// and is safe for concurrent use.
type Client struct {
	endpoint        *url.URL
	pl              *pipeline.Pipeline
	setSecretMethod string
}

// NewClient creates a secrets client for the given vault endpoint.
//
// The endpoint's query string is replaced with the pinned api-version
// parameter, which then rides on every request the client sends. A nil
// opts selects all defaults.
func NewClient(endpoint string, cred credential.TokenCredential, opts *ClientOptions) (*Client, error) {
	if cred == nil {
		return nil, errors.New("secrets: credential is nil")
	}

	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidEndpoint, endpoint)
	}

	q := url.Values{}
	q.Set("api-version", o.APIVersion)
	u.RawQuery = q.Encode()

	perRetry := make([]pipeline.Policy, 0, len(o.PerRetryPolicies)+1)
	perRetry = append(perRetry, pipeline.WithBearerToken(cred, o.Scopes))
	perRetry = append(perRetry, o.PerRetryPolicies...)

	plOpts := &pipeline.Options{
		HTTPClient:     o.HTTPClient,
		Transport:      o.Transport,
		Retry:          o.Retry,
		Logger:         o.Logger,
		Metrics:        o.Metrics,
		DisableTracing: o.DisableTracing,
	}

	return &Client{
		endpoint:        u,
		pl:              pipeline.New(moduleName, moduleVersion, plOpts, o.PerCallPolicies, perRetry),
		setSecretMethod: o.SetSecretMethod,
	}, nil
}

// Endpoint returns a copy of the client's resolved endpoint, pinned
// api-version included.
func (c *Client) Endpoint() *url.URL {
	u := *c.endpoint
	return &u
}

// SetSecret sets a secret's value. This is the options-object shape; nil
// options selects all defaults. The response is returned raw, decode with
// Response.JSON. Errors from the pipeline pass through unchanged.
func (c *Client) SetSecret(ctx context.Context, name, value string, options *SetSecretOptions) (*pipeline.Response, error) {
	return c.setSecret(ctx, name, value, options)
}

// setSecret is the single composition path behind both set-secret call
// shapes. Options are read once and never retained.
func (c *Client) setSecret(ctx context.Context, name, value string, opts *SetSecretOptions) (*pipeline.Response, error) {
	if err := validation.Required("name", name); err != nil {
		return nil, err
	}

	o := SetSecretOptions{}
	if opts != nil {
		o = *opts
	}

	ctx = pipeline.ContextWithOperation(ctx, operationSetSecret)

	// Replace the endpoint path wholesale; the pinned api-version query
	// survives untouched.
	u := *c.endpoint
	u.Path = "/secrets/" + name
	u.RawPath = "/secrets/" + url.PathEscape(name)

	req := pipeline.NewRequest(c.setSecretMethod, &u)
	if err := req.SetJSON(setSecretRequest{
		Value:       value,
		ContentType: o.ContentType,
		Tags:        o.Tags,
		Properties:  o.Properties,
	}); err != nil {
		return nil, err
	}

	resp, err := c.pl.Do(ctx, req)
	if err != nil {
		// Tag with the operation only; the wrapped error keeps its
		// classification for errors.Is and errors.As.
		return resp, fmt.Errorf("set secret %q: %w", name, err)
	}
	return resp, nil
}

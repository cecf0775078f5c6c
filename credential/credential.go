// Package credential defines the token provider boundary used by vaultkit
// clients, plus a few trivial providers for wiring and tests.
//
// Token acquisition protocols (OAuth flows, managed identity, etc) are out
// of scope: anything that can produce a bearer token can implement
// TokenCredential and plug into a client.
package credential

import (
	"context"
	"time"
)

// AccessToken is a bearer token with its expiry.
type AccessToken struct {
	// Token is the opaque bearer token value.
	Token string
	// ExpiresOn is the token expiry. Zero means unknown.
	ExpiresOn time.Time
}

// TokenRequestOptions carries the parameters of a token request.
type TokenRequestOptions struct {
	// Scopes are the authorization scopes to request the token for.
	Scopes []string
}

// TokenCredential provides bearer tokens for pipeline authentication.
// Implementations must be safe for concurrent use.
type TokenCredential interface {
	GetToken(ctx context.Context, opts TokenRequestOptions) (AccessToken, error)
}

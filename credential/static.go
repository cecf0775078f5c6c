package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// StaticTokenCredential returns a fixed token on every request. Intended
// for tests and local development against a fake or pre-authorized service.
type StaticTokenCredential struct {
	token     string
	expiresOn time.Time
}

// NewStaticTokenCredential creates a credential that always returns token.
func NewStaticTokenCredential(token string) *StaticTokenCredential {
	return &StaticTokenCredential{token: token}
}

// WithExpiry returns a copy of the credential that reports the given expiry.
func (c *StaticTokenCredential) WithExpiry(expiresOn time.Time) *StaticTokenCredential {
	return &StaticTokenCredential{token: c.token, expiresOn: expiresOn}
}

// GetToken implements TokenCredential.
func (c *StaticTokenCredential) GetToken(_ context.Context, _ TokenRequestOptions) (AccessToken, error) {
	if c.token == "" {
		return AccessToken{}, errors.New("credential: static token is empty")
	}
	return AccessToken{Token: c.token, ExpiresOn: c.expiresOn}, nil
}

// EnvTokenCredential reads a bearer token from an environment variable on
// every request, so token rotation outside the process is picked up.
type EnvTokenCredential struct {
	name string
}

// DefaultTokenEnvVar is the environment variable EnvTokenCredential reads
// when no name is given.
const DefaultTokenEnvVar = "VAULT_TOKEN"

// NewEnvTokenCredential creates a credential reading the named environment
// variable. An empty name selects DefaultTokenEnvVar.
func NewEnvTokenCredential(name string) *EnvTokenCredential {
	if name == "" {
		name = DefaultTokenEnvVar
	}
	return &EnvTokenCredential{name: name}
}

// GetToken implements TokenCredential.
func (c *EnvTokenCredential) GetToken(_ context.Context, _ TokenRequestOptions) (AccessToken, error) {
	token := strings.TrimSpace(os.Getenv(c.name))
	if token == "" {
		return AccessToken{}, fmt.Errorf("credential: environment variable %s is not set", c.name)
	}
	return AccessToken{Token: token}, nil
}

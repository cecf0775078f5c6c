package credential

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshWindow is how long before expiry a cached token is refreshed.
const refreshWindow = 2 * time.Minute

// CachingCredential wraps another credential and reuses its token until
// shortly before expiry. When the inner credential reports no expiry and
// the token is JWT-shaped, the exp claim is peeked without verification.
// Tokens with no discoverable expiry are not cached.
//
// The cache holds a single token: it assumes the wrapped credential is
// used with one scope set, which is the case for a client's pipeline.
type CachingCredential struct {
	inner TokenCredential

	mu     sync.Mutex
	cached AccessToken
}

// NewCachingCredential wraps inner with a token cache.
func NewCachingCredential(inner TokenCredential) *CachingCredential {
	return &CachingCredential{inner: inner}
}

// GetToken implements TokenCredential.
func (c *CachingCredential) GetToken(ctx context.Context, opts TokenRequestOptions) (AccessToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached.Token != "" && time.Until(c.cached.ExpiresOn) > refreshWindow {
		return c.cached, nil
	}

	tok, err := c.inner.GetToken(ctx, opts)
	if err != nil {
		// Serve the cached token through its remaining lifetime when the
		// refresh ahead of expiry fails.
		if c.cached.Token != "" && time.Now().Before(c.cached.ExpiresOn) {
			return c.cached, nil
		}
		return AccessToken{}, err
	}

	if tok.ExpiresOn.IsZero() {
		if exp, ok := jwtExpiry(tok.Token); ok {
			tok.ExpiresOn = exp
		}
	}
	if !tok.ExpiresOn.IsZero() {
		c.cached = tok
	}
	return tok, nil
}

// jwtExpiry peeks the exp claim of a JWT-shaped token. The signature is
// not verified; the service does that, the cache only needs a lifetime.
func jwtExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

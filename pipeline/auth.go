package pipeline

import (
	"context"

	"github.com/skillsenselab/vaultkit/credential"
)

// WithBearerToken returns a Policy that acquires a token for the given
// scopes and sets the Authorization header. Runs per retry attempt, so a
// token rotated between attempts is picked up.
func WithBearerToken(cred credential.TokenCredential, scopes []string) Policy {
	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
			tok, err := cred.GetToken(ctx, credential.TokenRequestOptions{Scopes: scopes})
			if err != nil {
				return nil, NewTokenError(err)
			}
			req.Header.Set("Authorization", "Bearer "+tok.Token)
			return next.Do(ctx, req)
		})
	}
}

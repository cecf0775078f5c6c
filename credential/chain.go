package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ChainedTokenCredential tries a sequence of credentials in order and
// returns the first token successfully acquired.
type ChainedTokenCredential struct {
	sources []TokenCredential
}

// NewChainedTokenCredential creates a chain over the given sources.
func NewChainedTokenCredential(sources ...TokenCredential) (*ChainedTokenCredential, error) {
	if len(sources) == 0 {
		return nil, errors.New("credential: chain needs at least one source")
	}
	for i, s := range sources {
		if s == nil {
			return nil, fmt.Errorf("credential: chain source %d is nil", i)
		}
	}
	return &ChainedTokenCredential{sources: sources}, nil
}

// GetToken implements TokenCredential. When every source fails, the
// returned error lists each source's failure.
func (c *ChainedTokenCredential) GetToken(ctx context.Context, opts TokenRequestOptions) (AccessToken, error) {
	msgs := make([]string, 0, len(c.sources))
	for _, s := range c.sources {
		tok, err := s.GetToken(ctx, opts)
		if err == nil {
			return tok, nil
		}
		if ctx.Err() != nil {
			return AccessToken{}, ctx.Err()
		}
		msgs = append(msgs, err.Error())
	}
	return AccessToken{}, fmt.Errorf("credential: all sources failed: %s", strings.Join(msgs, "; "))
}

package credential

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestStaticTokenCredential(t *testing.T) {
	cred := NewStaticTokenCredential("tok-123")
	tok, err := cred.GetToken(context.Background(), TokenRequestOptions{})
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if tok.Token != "tok-123" {
		t.Errorf("token = %q", tok.Token)
	}
	if !tok.ExpiresOn.IsZero() {
		t.Errorf("expected zero expiry, got %v", tok.ExpiresOn)
	}
}

func TestStaticTokenCredentialEmpty(t *testing.T) {
	cred := NewStaticTokenCredential("")
	if _, err := cred.GetToken(context.Background(), TokenRequestOptions{}); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestStaticTokenCredentialWithExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	cred := NewStaticTokenCredential("tok").WithExpiry(exp)
	tok, err := cred.GetToken(context.Background(), TokenRequestOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !tok.ExpiresOn.Equal(exp) {
		t.Errorf("expiry = %v, want %v", tok.ExpiresOn, exp)
	}
}

func TestEnvTokenCredential(t *testing.T) {
	t.Setenv("TEST_VAULT_TOKEN", "  env-tok  ")

	cred := NewEnvTokenCredential("TEST_VAULT_TOKEN")
	tok, err := cred.GetToken(context.Background(), TokenRequestOptions{})
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if tok.Token != "env-tok" {
		t.Errorf("token = %q, want trimmed value", tok.Token)
	}
}

func TestEnvTokenCredentialMissing(t *testing.T) {
	os.Unsetenv("TEST_VAULT_TOKEN_MISSING")
	cred := NewEnvTokenCredential("TEST_VAULT_TOKEN_MISSING")
	_, err := cred.GetToken(context.Background(), TokenRequestOptions{})
	if err == nil {
		t.Fatal("expected error for unset variable")
	}
	if !strings.Contains(err.Error(), "TEST_VAULT_TOKEN_MISSING") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestEnvTokenCredentialDefaultName(t *testing.T) {
	cred := NewEnvTokenCredential("")
	if cred.name != DefaultTokenEnvVar {
		t.Errorf("name = %q, want %q", cred.name, DefaultTokenEnvVar)
	}
}

type stubCredential struct {
	tok   AccessToken
	err   error
	calls int
}

func (s *stubCredential) GetToken(_ context.Context, _ TokenRequestOptions) (AccessToken, error) {
	s.calls++
	if s.err != nil {
		return AccessToken{}, s.err
	}
	return s.tok, nil
}

func TestChainedTokenCredential(t *testing.T) {
	failing := &stubCredential{err: errors.New("source one down")}
	working := &stubCredential{tok: AccessToken{Token: "from-two"}}

	chain, err := NewChainedTokenCredential(failing, working)
	if err != nil {
		t.Fatal(err)
	}

	tok, err := chain.GetToken(context.Background(), TokenRequestOptions{})
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if tok.Token != "from-two" {
		t.Errorf("token = %q", tok.Token)
	}
	if failing.calls != 1 || working.calls != 1 {
		t.Errorf("calls = %d, %d", failing.calls, working.calls)
	}
}

func TestChainedTokenCredentialAllFail(t *testing.T) {
	one := &stubCredential{err: errors.New("one down")}
	two := &stubCredential{err: errors.New("two down")}

	chain, err := NewChainedTokenCredential(one, two)
	if err != nil {
		t.Fatal(err)
	}

	_, err = chain.GetToken(context.Background(), TokenRequestOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "one down") || !strings.Contains(err.Error(), "two down") {
		t.Errorf("error should list each source's failure: %v", err)
	}
}

func TestChainedTokenCredentialValidation(t *testing.T) {
	if _, err := NewChainedTokenCredential(); err == nil {
		t.Error("expected error for empty chain")
	}
	if _, err := NewChainedTokenCredential(&stubCredential{}, nil); err == nil {
		t.Error("expected error for nil source")
	}
}

func TestCachingCredentialCachesUntilExpiry(t *testing.T) {
	inner := &stubCredential{tok: AccessToken{
		Token:     "cached",
		ExpiresOn: time.Now().Add(time.Hour),
	}}
	cred := NewCachingCredential(inner)

	for i := 0; i < 3; i++ {
		tok, err := cred.GetToken(context.Background(), TokenRequestOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if tok.Token != "cached" {
			t.Errorf("token = %q", tok.Token)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}
}

func TestCachingCredentialRefreshesNearExpiry(t *testing.T) {
	inner := &stubCredential{tok: AccessToken{
		Token:     "short-lived",
		ExpiresOn: time.Now().Add(30 * time.Second),
	}}
	cred := NewCachingCredential(inner)

	for i := 0; i < 2; i++ {
		if _, err := cred.GetToken(context.Background(), TokenRequestOptions{}); err != nil {
			t.Fatal(err)
		}
	}
	// Expiry is inside the refresh window, so every call refreshes.
	if inner.calls != 2 {
		t.Errorf("inner called %d times, want 2", inner.calls)
	}
}

func TestCachingCredentialPeeksJWTExpiry(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "vaultkit-test",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatal(err)
	}

	inner := &stubCredential{tok: AccessToken{Token: signed}}
	cred := NewCachingCredential(inner)

	tok, err := cred.GetToken(context.Background(), TokenRequestOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if tok.ExpiresOn.IsZero() {
		t.Fatal("expected expiry peeked from the exp claim")
	}

	// The peeked expiry makes the token cacheable.
	if _, err := cred.GetToken(context.Background(), TokenRequestOptions{}); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}
}

func TestCachingCredentialOpaqueTokenNotCached(t *testing.T) {
	inner := &stubCredential{tok: AccessToken{Token: "opaque-no-expiry"}}
	cred := NewCachingCredential(inner)

	for i := 0; i < 2; i++ {
		if _, err := cred.GetToken(context.Background(), TokenRequestOptions{}); err != nil {
			t.Fatal(err)
		}
	}
	if inner.calls != 2 {
		t.Errorf("inner called %d times, want 2 (opaque tokens are not cached)", inner.calls)
	}
}

func TestCachingCredentialServesCacheOnRefreshFailure(t *testing.T) {
	inner := &stubCredential{tok: AccessToken{
		Token:     "will-fail-later",
		ExpiresOn: time.Now().Add(90 * time.Second),
	}}
	cred := NewCachingCredential(inner)

	// Prime the cache. Expiry is within the refresh window but still in
	// the future, so the next call tries to refresh.
	if _, err := cred.GetToken(context.Background(), TokenRequestOptions{}); err != nil {
		t.Fatal(err)
	}

	inner.err = errors.New("token endpoint down")
	tok, err := cred.GetToken(context.Background(), TokenRequestOptions{})
	if err != nil {
		t.Fatalf("expected cached token to be served, got %v", err)
	}
	if tok.Token != "will-fail-later" {
		t.Errorf("token = %q", tok.Token)
	}
}

func TestCachingCredentialConcurrent(t *testing.T) {
	inner := &stubCredential{tok: AccessToken{
		Token:     "shared",
		ExpiresOn: time.Now().Add(time.Hour),
	}}
	cred := NewCachingCredential(inner)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cred.GetToken(context.Background(), TokenRequestOptions{}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}
}

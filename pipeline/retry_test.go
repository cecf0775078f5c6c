package pipeline

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func fastRetry(attempts int) RetryOptions {
	return RetryOptions{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
}

func TestRetryServerErrorsThenSuccess(t *testing.T) {
	calls := 0
	terminal := TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
		calls++
		if calls < 3 {
			return &Response{StatusCode: 500}, NewServerError(500, nil)
		}
		return &Response{StatusCode: 200}, nil
	})

	tr := WithRetry(fastRetry(3))(terminal)
	resp, err := tr.Do(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryExhausted(t *testing.T) {
	calls := 0
	terminal := TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
		calls++
		return &Response{StatusCode: 503}, NewServerError(503, nil)
	})

	tr := WithRetry(fastRetry(3))(terminal)
	resp, err := tr.Do(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if !IsServerError(err) {
		t.Errorf("expected classified server error, got %v", err)
	}
	if resp == nil || resp.StatusCode != 503 {
		t.Errorf("expected final attempt's response, got %+v", resp)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetrySkipsNonRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
	}{
		{"validation", NewValidationError("bad request")},
		{"auth", NewAuthError(401, nil)},
		{"not found", NewNotFoundError(nil)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			terminal := TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
				calls++
				return nil, tc.err
			})

			tr := WithRetry(fastRetry(3))(terminal)
			_, err := tr.Do(context.Background(), testRequest())
			if err == nil {
				t.Fatal("expected error")
			}
			if calls != 1 {
				t.Errorf("calls = %d, want 1 (no retry)", calls)
			}
		})
	}
}

func TestRetryDisabled(t *testing.T) {
	calls := 0
	terminal := TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
		calls++
		return nil, NewServerError(500, nil)
	})

	tr := WithRetry(RetryOptions{MaxAttempts: 1})(terminal)
	if _, err := tr.Do(context.Background(), testRequest()); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryHonorsRetryAfter(t *testing.T) {
	calls := 0
	terminal := TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
		calls++
		if calls == 1 {
			h := make(http.Header)
			h.Set("Retry-After", "0")
			return &Response{StatusCode: 429, Header: h}, NewRateLimitError(nil)
		}
		return &Response{StatusCode: 200}, nil
	})

	tr := WithRetry(fastRetry(3))(terminal)
	resp, err := tr.Do(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryClonesRequestPerAttempt(t *testing.T) {
	calls := 0
	terminal := TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
		calls++
		if req.Header.Get("X-Attempt-Scar") != "" {
			t.Error("attempt saw a previous attempt's header mutation")
		}
		req.Header.Set("X-Attempt-Scar", "yes")
		if calls < 2 {
			return nil, NewServerError(500, nil)
		}
		return &Response{StatusCode: 200}, nil
	})

	tr := WithRetry(fastRetry(3))(terminal)
	if _, err := tr.Do(context.Background(), testRequest()); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	terminal := TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
		cancel()
		return nil, NewConnectionError(errors.New("refused"))
	})

	tr := WithRetry(fastRetry(5))(terminal)
	_, err := tr.Do(ctx, testRequest())
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
}

func TestRetryAfterParsing(t *testing.T) {
	h := make(http.Header)
	h.Set("Retry-After", "2")
	if d, ok := retryAfter(h); !ok || d != 2*time.Second {
		t.Errorf("delta-seconds: d = %v, ok = %v", d, ok)
	}

	h.Set("Retry-After", time.Now().Add(3*time.Second).UTC().Format(http.TimeFormat))
	if d, ok := retryAfter(h); !ok || d <= 0 {
		t.Errorf("http-date: d = %v, ok = %v", d, ok)
	}

	h.Set("Retry-After", "garbage")
	if _, ok := retryAfter(h); ok {
		t.Error("garbage should not parse")
	}

	h.Del("Retry-After")
	if _, ok := retryAfter(h); ok {
		t.Error("missing header should not parse")
	}
}

func TestRetryAfterCeiling(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{-time.Second, 0},
		{time.Millisecond, 1},
		{900 * time.Millisecond, 1},
		{time.Second, 1},
		{2900 * time.Millisecond, 3},
		{3 * time.Second, 3},
	}
	for _, tc := range tests {
		if got := ceilSeconds(tc.d); got != tc.want {
			t.Errorf("ceilSeconds(%v) = %d, want %d", tc.d, got, tc.want)
		}
	}
}

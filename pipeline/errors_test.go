package pipeline

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantNil   bool
		wantCode  ErrorCode
		retryable bool
	}{
		{"200 ok", 200, true, 0, false},
		{"201 created", 201, true, 0, false},
		{"204 no content", 204, true, 0, false},
		{"400 bad request", 400, false, ErrCodeValidation, false},
		{"401 unauthorized", 401, false, ErrCodeAuth, false},
		{"403 forbidden", 403, false, ErrCodeAuth, false},
		{"404 not found", 404, false, ErrCodeNotFound, false},
		{"408 timeout", 408, false, ErrCodeTimeout, true},
		{"409 conflict", 409, false, ErrCodeValidation, false},
		{"429 throttled", 429, false, ErrCodeRateLimit, true},
		{"500 server error", 500, false, ErrCodeServer, true},
		{"503 unavailable", 503, false, ErrCodeServer, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ClassifyStatusCode(tc.status, nil)
			if tc.wantNil {
				if err != nil {
					t.Fatalf("expected nil error for %d, got %v", tc.status, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error for %d", tc.status)
			}
			if err.Code != tc.wantCode {
				t.Errorf("code = %s, want %s", err.Code, tc.wantCode)
			}
			if err.Retryable != tc.retryable {
				t.Errorf("retryable = %v, want %v", err.Retryable, tc.retryable)
			}
			if err.StatusCode != tc.status {
				t.Errorf("status = %d, want %d", err.StatusCode, tc.status)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"timeout", NewTimeoutError(errors.New("deadline")), IsTimeout},
		{"connection", NewConnectionError(errors.New("refused")), IsConnection},
		{"auth", NewAuthError(401, nil), IsAuth},
		{"token", NewTokenError(errors.New("no token")), IsAuth},
		{"not found", NewNotFoundError(nil), IsNotFound},
		{"rate limit", NewRateLimitError(nil), IsRateLimit},
		{"validation", NewValidationError("bad name"), IsValidation},
		{"server", NewServerError(502, nil), IsServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.pred(tc.err) {
				t.Errorf("predicate did not match %v", tc.err)
			}
			// Predicates must see through wrapping.
			wrapped := fmt.Errorf("set secret %q: %w", "name", tc.err)
			if !tc.pred(wrapped) {
				t.Errorf("predicate did not match wrapped %v", wrapped)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(NewServerError(500, nil)) {
		t.Error("server errors should be retryable")
	}
	if !IsRetryable(NewRateLimitError(nil)) {
		t.Error("rate limit errors should be retryable")
	}
	if IsRetryable(NewValidationError("bad")) {
		t.Error("validation errors should not be retryable")
	}
	if IsRetryable(NewAuthError(403, nil)) {
		t.Error("auth errors should not be retryable")
	}
	if IsRetryable(errors.New("opaque")) {
		t.Error("unclassified errors should not be retryable")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewConnectionError(cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestErrorString(t *testing.T) {
	withStatus := NewServerError(500, nil)
	if got := withStatus.Error(); got != "pipeline: server (HTTP 500): HTTP 500" {
		t.Errorf("unexpected error string %q", got)
	}
	withoutStatus := NewValidationError("name is empty")
	if got := withoutStatus.Error(); got != "pipeline: validation: name is empty" {
		t.Errorf("unexpected error string %q", got)
	}
}

func TestServiceMessage(t *testing.T) {
	body := []byte(`{"error":{"code":"SecretNotFound","message":"secret does not exist"}}`)
	err := NewNotFoundError(body)
	if got := err.ServiceMessage(); got != "secret does not exist" {
		t.Errorf("ServiceMessage = %q", got)
	}

	plain := NewNotFoundError([]byte("not json"))
	if got := plain.ServiceMessage(); got != "HTTP 404" {
		t.Errorf("ServiceMessage fallback = %q", got)
	}
}

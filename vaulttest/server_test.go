package vaulttest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func doSet(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestServerStoresSecret(t *testing.T) {
	srv := NewServer(Options{Token: "test-token"})
	defer srv.Close()

	resp := doSet(t, http.MethodGet, srv.URL()+"/secrets/db-password?api-version=7.5",
		"test-token", `{"value":"hunter2","tags":{"env":"test"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var decoded StoredSecret
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Name != "db-password" || decoded.Version == "" {
		t.Errorf("decoded = %+v", decoded)
	}

	stored, ok := srv.Secret("db-password")
	if !ok {
		t.Fatal("secret not stored")
	}
	if stored.Value != "hunter2" || stored.Tags["env"] != "test" {
		t.Errorf("stored = %+v", stored)
	}
}

func TestServerAcceptsPutCorrection(t *testing.T) {
	srv := NewServer(Options{Token: "test-token"})
	defer srv.Close()

	resp := doSet(t, http.MethodPut, srv.URL()+"/secrets/s?api-version=7.5",
		"test-token", `{"value":"v"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestServerVersionsIncrement(t *testing.T) {
	srv := NewServer(Options{Token: "tok"})
	defer srv.Close()

	doSet(t, http.MethodGet, srv.URL()+"/secrets/s?api-version=7.5", "tok", `{"value":"one"}`)
	doSet(t, http.MethodGet, srv.URL()+"/secrets/s?api-version=7.5", "tok", `{"value":"two"}`)

	stored, _ := srv.Secret("s")
	if stored.Value != "two" || stored.Version != "v2" {
		t.Errorf("stored = %+v", stored)
	}
}

func TestServerRejectsWrongAPIVersion(t *testing.T) {
	srv := NewServer(Options{Token: "tok"})
	defer srv.Close()

	resp := doSet(t, http.MethodGet, srv.URL()+"/secrets/s?api-version=1.0", "tok", `{"value":"v"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Error.Code != "UnsupportedApiVersion" {
		t.Errorf("error code = %q", envelope.Error.Code)
	}
}

func TestServerAuth(t *testing.T) {
	srv := NewServer(Options{Token: "right"})
	defer srv.Close()

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"wrong token", "wrong", http.StatusForbidden},
		{"right token", "right", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := doSet(t, http.MethodGet, srv.URL()+"/secrets/s?api-version=7.5", tc.token, `{"value":"v"}`)
			if resp.StatusCode != tc.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.status)
			}
		})
	}
}

func TestServerJWTAuth(t *testing.T) {
	key := []byte("jwt-signing-key")
	srv := NewServer(Options{JWTKey: key})
	defer srv.Close()

	good, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	bad, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-key"))
	if err != nil {
		t.Fatal(err)
	}

	if resp := doSet(t, http.MethodGet, srv.URL()+"/secrets/s?api-version=7.5", good, `{"value":"v"}`); resp.StatusCode != http.StatusOK {
		t.Errorf("valid JWT: status = %d", resp.StatusCode)
	}
	if resp := doSet(t, http.MethodGet, srv.URL()+"/secrets/s?api-version=7.5", bad, `{"value":"v"}`); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("forged JWT: status = %d", resp.StatusCode)
	}
}

func TestServerRejectsBadPayload(t *testing.T) {
	srv := NewServer(Options{Token: "tok"})
	defer srv.Close()

	if resp := doSet(t, http.MethodGet, srv.URL()+"/secrets/s?api-version=7.5", "tok", `not json`); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad json: status = %d", resp.StatusCode)
	}
	if resp := doSet(t, http.MethodGet, srv.URL()+"/secrets/s?api-version=7.5", "tok", `{}`); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing value: status = %d", resp.StatusCode)
	}
}

func TestServerRecordsRequests(t *testing.T) {
	srv := NewServer(Options{Token: "tok"})
	defer srv.Close()

	doSet(t, http.MethodGet, srv.URL()+"/secrets/s?api-version=7.5", "tok", `{"value":"v"}`)

	recs := srv.Requests()
	if len(recs) != 1 {
		t.Fatalf("requests = %d", len(recs))
	}
	if recs[0].Method != http.MethodGet || recs[0].Path != "/secrets/s" {
		t.Errorf("record = %+v", recs[0])
	}
	if string(recs[0].Body) != `{"value":"v"}` {
		t.Errorf("recorded body = %s", recs[0].Body)
	}
}

package pipeline

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Request describes an outbound HTTP request flowing through the pipeline.
//
// The body is held as bytes rather than a reader so the retry policy can
// replay it on every attempt.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, etc).
	Method string
	// URL is the fully resolved request URL, including any query
	// parameters pinned by the service client.
	URL *url.URL
	// Header holds request headers. Policies add to it as the request
	// travels down the chain.
	Header http.Header
	// Body is the serialized request body. Nil means no body.
	Body []byte
}

// NewRequest creates a request for the given method and URL.
func NewRequest(method string, u *url.URL) *Request {
	return &Request{
		Method: method,
		URL:    u,
		Header: make(http.Header),
	}
}

// SetJSON serializes v as the request body and sets the Content-Type header.
func (r *Request) SetJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return NewValidationError(fmt.Sprintf("encode body: %v", err))
	}
	r.Body = data
	r.Header.Set("Content-Type", "application/json")
	return nil
}

// Clone returns a deep copy of the request. The retry policy clones before
// each attempt so per-retry policies never see another attempt's mutations.
func (r *Request) Clone() *Request {
	cp := &Request{
		Method: r.Method,
		Header: r.Header.Clone(),
	}
	if cp.Header == nil {
		cp.Header = make(http.Header)
	}
	if r.URL != nil {
		u := *r.URL
		cp.URL = &u
	}
	if r.Body != nil {
		cp.Body = append([]byte(nil), r.Body...)
	}
	return cp
}

// Response is the result of a pipeline request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Header holds the response headers.
	Header http.Header
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("pipeline: decode response: %w", err)
	}
	return nil
}

package vaulttest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultAPIVersion is the api-version the fake accepts unless overridden.
const DefaultAPIVersion = "7.5"

// Options configures the fake vault service.
type Options struct {
	// APIVersion is the api-version query value the fake requires.
	// Empty selects DefaultAPIVersion.
	APIVersion string

	// Token is the static bearer token the fake accepts. Ignored when
	// JWTKey is set.
	Token string

	// JWTKey enables HS256 JWT verification of bearer tokens instead of
	// the static token comparison.
	JWTKey []byte

	// DisableAuth turns off the bearer check entirely.
	DisableAuth bool
}

// StoredSecret is a secret held by the fake, with the version the fake
// assigned on the write that produced it.
type StoredSecret struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Value       string            `json:"value"`
	ContentType string            `json:"contentType,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Properties  *setProperties    `json:"properties,omitempty"`
}

// RequestRecord captures one request the fake served, for assertions.
type RequestRecord struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

type setProperties struct {
	Enabled bool `json:"enabled"`
}

type setSecretBody struct {
	Value       string            `json:"value"`
	ContentType string            `json:"contentType"`
	Tags        map[string]string `json:"tags"`
	Properties  *setProperties    `json:"properties"`
}

// Server is an in-process fake vault service.
type Server struct {
	opts Options
	srv  *httptest.Server

	mu       sync.Mutex
	secrets  map[string]StoredSecret
	versions int
	requests []RequestRecord
}

// NewServer starts a fake vault service on a local listener.
func NewServer(opts Options) *Server {
	if opts.APIVersion == "" {
		opts.APIVersion = DefaultAPIVersion
	}

	s := &Server{
		opts:    opts,
		secrets: make(map[string]StoredSecret),
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(s.record, s.requireAPIVersion)
	if !opts.DisableAuth {
		router.Use(s.requireBearer)
	}

	// The service's current contract reads the set payload from a GET
	// request body; PUT is the anticipated correction. Both land here.
	router.GET("/secrets/:name", s.handleSetSecret)
	router.PUT("/secrets/:name", s.handleSetSecret)

	s.srv = httptest.NewServer(router)
	return s
}

// URL returns the fake's base URL.
func (s *Server) URL() string {
	return s.srv.URL
}

// Close shuts the fake down.
func (s *Server) Close() {
	s.srv.Close()
}

// Secret returns the stored secret for name, if any.
func (s *Server) Secret(name string) (StoredSecret, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec, ok := s.secrets[name]
	return sec, ok
}

// Requests returns a copy of every request the fake has served.
func (s *Server) Requests() []RequestRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RequestRecord(nil), s.requests...)
}

func (s *Server) record(c *gin.Context) {
	body, _ := c.GetRawData()
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.requests = append(s.requests, RequestRecord{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.RawQuery,
		Body:   body,
	})
	s.mu.Unlock()

	c.Next()
}

func (s *Server) requireAPIVersion(c *gin.Context) {
	if got := c.Query("api-version"); got != s.opts.APIVersion {
		serviceError(c, http.StatusBadRequest, "UnsupportedApiVersion",
			fmt.Sprintf("api-version %q is not supported", got))
		return
	}
	c.Next()
}

func (s *Server) requireBearer(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token == "" {
		serviceError(c, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
		return
	}

	if len(s.opts.JWTKey) > 0 {
		_, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
			}
			return s.opts.JWTKey, nil
		})
		if err != nil {
			serviceError(c, http.StatusUnauthorized, "Unauthorized", "invalid token")
			return
		}
	} else if token != s.opts.Token {
		serviceError(c, http.StatusForbidden, "Forbidden", "token rejected")
		return
	}

	c.Next()
}

func (s *Server) handleSetSecret(c *gin.Context) {
	name := c.Param("name")

	var body setSecretBody
	if err := c.ShouldBindJSON(&body); err != nil {
		serviceError(c, http.StatusBadRequest, "BadParameter", "request body is not valid JSON")
		return
	}
	if body.Value == "" {
		serviceError(c, http.StatusBadRequest, "BadParameter", "value is required")
		return
	}

	s.mu.Lock()
	s.versions++
	sec := StoredSecret{
		Name:        name,
		Version:     fmt.Sprintf("v%d", s.versions),
		Value:       body.Value,
		ContentType: body.ContentType,
		Tags:        body.Tags,
		Properties:  body.Properties,
	}
	s.secrets[name] = sec
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"id":          fmt.Sprintf("%s/secrets/%s/%s", s.srv.URL, name, sec.Version),
		"name":        sec.Name,
		"version":     sec.Version,
		"value":       sec.Value,
		"contentType": sec.ContentType,
		"tags":        sec.Tags,
		"properties":  sec.Properties,
	})
}

func serviceError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{"code": code, "message": message},
	})
}

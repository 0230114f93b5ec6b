package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"callerid/internal/platform/config"
)

type ServerSuite struct {
	suite.Suite
	server *httptest.Server
	deps   *infra
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func testConfig(requests int) config.Server {
	return config.Server{
		JWTSigningKey:          "test-signing-key",
		JWTIssuer:              "callerid-test",
		TokenTTL:               time.Hour,
		RequestTimeout:         5 * time.Second,
		SearchScoreConcurrency: 4,
		RateLimit:              config.RateLimitConfig{Requests: requests, Window: time.Minute},
	}
}

func startServer(t *testing.T, cfg config.Server) (*httptest.Server, *infra) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps, err := buildInfra(context.Background(), cfg, log)
	require.NoError(t, err)
	router, err := buildRouter(cfg, log, deps)
	require.NoError(t, err)
	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		deps.close()
	})
	return srv, deps
}

func (s *ServerSuite) SetupTest() {
	s.server, s.deps = startServer(s.T(), testConfig(1000))
}

func (s *ServerSuite) do(method, path, token string, body any) (*http.Response, map[string]any) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if len(raw) > 0 && raw[0] == '{' {
		s.Require().NoError(json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// signUp registers an account and returns its id and a bearer token.
func (s *ServerSuite) signUp(name, phone, email string) (int64, string) {
	resp, body := s.do(http.MethodPost, "/api/users/register", "", map[string]string{
		"name": name, "phone": phone, "email": email, "password": "secret123",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	id := int64(body["id"].(float64))

	resp, body = s.do(http.MethodPost, "/api/users/login", "", map[string]string{
		"phone": phone, "password": "secret123",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	return id, body["token"].(string)
}

func (s *ServerSuite) TestHealthAndMetrics() {
	resp, body := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("ok", body["status"])

	resp, _ = s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *ServerSuite) TestDirectoryRoutesRequireToken() {
	resp, body := s.do(http.MethodGet, "/api/users/search?name=a", "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("unauthorized", body["error"])

	resp, _ = s.do(http.MethodGet, "/api/users/contacts", "not-a-token", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *ServerSuite) TestEmailDisclosureFollowsContacts() {
	aliceID, aliceToken := s.signUp("Alice Smith", "+15550000001", "alice@example.com")
	bobID, bobToken := s.signUp("Bob Jones", "+15550000002", "bob@example.com")

	resp, _ := s.do(http.MethodPost, "/api/users/contacts", bobToken, map[string]string{
		"name": "Alice", "phone": "+15550000001",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp, body := s.do(http.MethodGet, "/api/users/"+strconv.FormatInt(aliceID, 10), bobToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	s.Equal("alice@example.com", user["email"])

	resp, body = s.do(http.MethodGet, "/api/users/"+strconv.FormatInt(bobID, 10), aliceToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	user = body["user"].(map[string]any)
	_, present := user["email"]
	s.False(present, "email key must be absent when withheld")
	s.Equal("Bob Jones", user["name"])
}

func (s *ServerSuite) TestSearchAndSpamFlow() {
	_, token := s.signUp("Carol King", "+15550000003", "")
	s.signUp("Mccarol Dean", "+15550000004", "")

	resp, _ := s.do(http.MethodPost, "/api/users/report", token, map[string]string{"phone": "+15550000004"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp, _ = s.do(http.MethodPost, "/api/users/report", token, map[string]string{"phone": "+15550000004"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp, body := s.do(http.MethodGet, "/api/users/search?name=carol", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	results := body["results"].([]any)
	s.Require().Len(results, 2)
	s.Equal("Carol King", results[0].(map[string]any)["name"], "prefix matches come first")
	s.Equal(2.0, results[1].(map[string]any)["spamLikelihood"])

	resp, body = s.do(http.MethodGet, "/api/users/search/phone?phone=%2B15550000004", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(2.0, body["spamLikelihood"])

	resp, _ = s.do(http.MethodGet, "/api/users/search/phone?phone=%2B19999999999", token, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ServerSuite) TestDuplicateRegistrationConflicts() {
	s.signUp("Dana White", "+15550000005", "")
	resp, _ := s.do(http.MethodPost, "/api/users/register", "", map[string]string{
		"name": "Dana Again", "phone": "+15550000005", "password": "secret123",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)
}

func TestRateLimitAppliesToAPIRoutes(t *testing.T) {
	srv, _ := startServer(t, testConfig(2))

	status := func(path string) int {
		resp, err := srv.Client().Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusUnauthorized, status("/api/users/profile"))
	assert.Equal(t, http.StatusUnauthorized, status("/api/users/profile"))
	assert.Equal(t, http.StatusTooManyRequests, status("/api/users/profile"))
	assert.Equal(t, http.StatusOK, status("/health"), "health is not rate limited")
}

package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/devflow/backend/internal/auth"
	"github.com/emilythestrangee/devflow/backend/internal/config"
	"github.com/emilythestrangee/devflow/backend/internal/database"
	"github.com/emilythestrangee/devflow/backend/internal/handlers"
	"github.com/emilythestrangee/devflow/backend/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeHealth struct {
	status string
}

func (f fakeHealth) Health(context.Context) database.HealthReport {
	return database.HealthReport{Status: f.status, OpenConnections: 2}
}

func newTestServer(t *testing.T, status string) (*http.Server, *auth.Tokens) {
	t.Helper()
	cfg := &config.Config{Port: "0", CORSOrigins: []string{"*"}}
	tokens := auth.NewTokens("secret", time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	// The store is nil: only routes that never reach it are exercised.
	h := handlers.NewHandler(nil, tokens, handlers.NewOAuthClient(), handlers.NewOAuthClient())
	return NewServer(cfg, log, fakeHealth{status: status}, h, tokens), tokens
}

func serve(srv *http.Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, "up")
	w := serve(srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"up","service":"devflow-api","database":{"status":"up","open_connections":2,"in_use":0,"idle":0,"wait_count":0,"latency_ms":0}}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	srv, _ = newTestServer(t, "down")
	w = serve(srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"down"`)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, "up")
	serve(srv, httptest.NewRequest(http.MethodGet, "/health", nil))

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv, _ := newTestServer(t, "up")

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/me"},
		{http.MethodPost, "/api/questions"},
		{http.MethodDelete, "/api/questions/1"},
		{http.MethodPost, "/api/questions/1/vote"},
		{http.MethodPost, "/api/questions/1/collection"},
		{http.MethodGet, "/api/collections"},
		{http.MethodPost, "/api/questions/1/answers"},
		{http.MethodDelete, "/api/answers/1"},
		{http.MethodPost, "/api/answers/1/vote"},
		{http.MethodPost, "/api/interactions"},
		{http.MethodGet, "/api/me/interactions"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := serve(srv, httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestDraftRouteIsPublic(t *testing.T) {
	srv, _ := newTestServer(t, "up")
	req := httptest.NewRequest(http.MethodPost, "/api/drafts/tags",
		strings.NewReader(`{"tags":["go"],"action":"add","value":"gin"}`))
	req.Header.Set("Content-Type", "application/json")

	w := serve(srv, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tags":["go","gin"],"error":null}`, w.Body.String())
}

func TestCORSConfig(t *testing.T) {
	wild := corsConfig([]string{"*"})
	assert.True(t, wild.AllowAllOrigins)
	assert.False(t, wild.AllowCredentials)

	explicit := corsConfig([]string{"https://devflow.example"})
	assert.False(t, explicit.AllowAllOrigins)
	assert.True(t, explicit.AllowCredentials)
	assert.Equal(t, []string{"https://devflow.example"}, explicit.AllowOrigins)
}

package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/homsent/homsent-chef/backend/config"
	"github.com/homsent/homsent-chef/backend/internal/api"
	"github.com/homsent/homsent-chef/backend/internal/metrics"
	"github.com/homsent/homsent-chef/backend/internal/middleware"
	"github.com/homsent/homsent-chef/backend/internal/mocks"
	"github.com/homsent/homsent-chef/backend/internal/service"
	"github.com/homsent/homsent-chef/backend/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, health HealthCheck) *Server {
	t.Helper()
	cfg := &config.Config{
		ServerHost:       "localhost",
		ServerPort:       "8080",
		CORSOrigins:      []string{"http://localhost:5173"},
		JWTSecret:        "test-secret",
		WorkspaceIdleTTL: time.Hour,
	}
	m := metrics.New(prometheus.NewRegistry())
	adapter := storage.NewAdapter(storage.NewMemoryBackend(), zap.NewNop(), m)
	workspaces := service.NewWorkspaces(&mocks.MockGateway{}, adapter, zap.NewNop(), m)
	scopes := service.NewScopeService(cfg.JWTSecret, time.Hour)
	handler := api.NewHandler(workspaces, scopes, nil, middleware.NewAIRateLimiter(nil, 10), zap.NewNop())
	return New(cfg, handler, workspaces, m, health, zap.NewNop())
}

func TestNew(t *testing.T) {
	server := newTestServer(t, nil)
	require.NotNil(t, server)
	assert.Equal(t, "localhost:8080", server.http.Addr)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
	server.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	server.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "homsent_chef_http_requests_total")
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		health HealthCheck
		status int
	}{
		{"no backing service", nil, http.StatusOK},
		{"healthy backend", func(context.Context) error { return nil }, http.StatusOK},
		{"unreachable backend", func(context.Context) error { return errors.New("connection refused") }, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.health)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			server.router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

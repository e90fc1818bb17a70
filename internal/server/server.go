package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/homsent/homsent-chef/backend/config"
	"github.com/homsent/homsent-chef/backend/internal/api"
	"github.com/homsent/homsent-chef/backend/internal/metrics"
	"github.com/homsent/homsent-chef/backend/internal/middleware"
	"github.com/homsent/homsent-chef/backend/internal/service"
)

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	http       *http.Server
	workspaces *service.Workspaces
	idleTTL    time.Duration
	health     HealthCheck
	log        *zap.Logger
}

// New creates a new server instance. health may be nil when the storage
// backend has nothing to ping.
func New(cfg *config.Config, handler *api.Handler, workspaces *service.Workspaces, m *metrics.Metrics, health HealthCheck, log *zap.Logger) *Server {
	router := gin.New()
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.RequestLogger(log, m))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	s := &Server{
		router:     router,
		workspaces: workspaces,
		idleTTL:    cfg.WorkspaceIdleTTL,
		health:     health,
		log:        log.Named("server"),
	}

	router.GET("/health", s.healthHandler)
	router.GET("/metrics", gin.WrapH(m.Handler()))
	handler.RegisterRoutes(router.Group("/api/v1"))

	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) healthHandler(c *gin.Context) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.health(ctx); err != nil {
			s.log.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "workspaces": s.workspaces.Len()})
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.log.Info("starting server", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	go s.sweepIdle(ctx)

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Stop(shutdownCtx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}

func (s *Server) sweepIdle(ctx context.Context) {
	if s.idleTTL <= 0 {
		return
	}
	ticker := time.NewTicker(s.idleTTL / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.workspaces.Sweep(s.idleTTL)
		}
	}
}

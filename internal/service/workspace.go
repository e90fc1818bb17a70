package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/homsent/homsent-chef/backend/internal/metrics"
	"github.com/homsent/homsent-chef/backend/internal/storage"
)

// Workspaces hands out one Controller per browser scope, loading the scope's
// stores the first time it is seen.
type Workspaces struct {
	gateway Gateway
	adapter *storage.Adapter
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*workspace
}

type workspace struct {
	controller *Controller
	lastUsed   time.Time
}

func NewWorkspaces(gateway Gateway, adapter *storage.Adapter, log *zap.Logger, m *metrics.Metrics) *Workspaces {
	return &Workspaces{
		gateway: gateway,
		adapter: adapter,
		log:     log.Named("workspaces"),
		metrics: m,
		now:     time.Now,
		entries: make(map[string]*workspace),
	}
}

// Get returns the controller of scopeID, creating it on first use.
func (w *Workspaces) Get(ctx context.Context, scopeID string) *Controller {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ws, ok := w.entries[scopeID]; ok {
		ws.lastUsed = w.now()
		return ws.controller
	}

	log := w.log.With(zap.String("scope_id", scopeID))
	ctrl := NewController(context.WithoutCancel(ctx), w.gateway, w.adapter.ForScope(scopeID), log, w.metrics)
	w.entries[scopeID] = &workspace{controller: ctrl, lastUsed: w.now()}
	w.metrics.SetWorkspaces(len(w.entries))
	log.Debug("workspace loaded")
	return ctrl
}

// Sweep unloads workspaces idle for longer than maxIdle. Their stores are
// already persisted; only the in-memory chat and view state is lost.
func (w *Workspaces) Sweep(maxIdle time.Duration) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := w.now().Add(-maxIdle)
	removed := 0
	for id, ws := range w.entries {
		if ws.lastUsed.Before(cutoff) {
			delete(w.entries, id)
			removed++
		}
	}
	if removed > 0 {
		w.metrics.SetWorkspaces(len(w.entries))
		w.log.Info("unloaded idle workspaces", zap.Int("count", removed))
	}
	return removed
}

func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// Package storage persists named JSON records for the recipe and shopping
// list stores. Failures never reach callers: a record that cannot be read is
// reported as absent and a failed write is only logged.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/homsent/homsent-chef/backend/internal/metrics"
)

// Record names.
const (
	RecipesKey      = "homsent-chef-recipes"
	ShoppingListKey = "homsent-chef-shopping-list"
)

// Backend is a raw byte store. Implementations must be safe for concurrent use.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Records loads and saves named JSON documents.
type Records interface {
	// Load decodes the record into dst and reports whether it was found and
	// well formed.
	Load(ctx context.Context, key string, dst any) bool
	// Save writes value under key. Errors are logged, never returned.
	Save(ctx context.Context, key string, value any)
}

// Adapter implements Records on top of a Backend.
type Adapter struct {
	backend Backend
	log     *zap.Logger
	metrics *metrics.Metrics
}

var _ Records = (*Adapter)(nil)

// NewAdapter creates a new persistence adapter
func NewAdapter(backend Backend, log *zap.Logger, m *metrics.Metrics) *Adapter {
	return &Adapter{
		backend: backend,
		log:     log.Named("storage"),
		metrics: m,
	}
}

func (a *Adapter) Load(ctx context.Context, key string, dst any) bool {
	data, found, err := a.backend.Get(ctx, key)
	if err != nil {
		a.log.Warn("failed to read record", zap.String("key", key), zap.Error(err))
		a.metrics.PersistenceFailure("read")
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		a.log.Warn("discarding malformed record", zap.String("key", key), zap.Error(err))
		a.metrics.PersistenceFailure("read")
		return false
	}
	return true
}

func (a *Adapter) Save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		a.log.Error("failed to encode record", zap.String("key", key), zap.Error(err))
		a.metrics.PersistenceFailure("write")
		return
	}
	if err := a.backend.Set(ctx, key, data); err != nil {
		a.log.Error("failed to write record", zap.String("key", key), zap.Error(err))
		a.metrics.PersistenceFailure("write")
	}
}

// ForScope returns Records whose keys are confined to one browser scope.
func (a *Adapter) ForScope(scopeID string) Records {
	return &scoped{adapter: a, prefix: fmt.Sprintf("scope:%s:", scopeID)}
}

type scoped struct {
	adapter *Adapter
	prefix  string
}

func (s *scoped) Load(ctx context.Context, key string, dst any) bool {
	return s.adapter.Load(ctx, s.prefix+key, dst)
}

func (s *scoped) Save(ctx context.Context, key string, value any) {
	s.adapter.Save(ctx, s.prefix+key, value)
}

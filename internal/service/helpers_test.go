package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/homsent/homsent-chef/backend/internal/model"
	"github.com/homsent/homsent-chef/backend/internal/storage"
)

// countingBackend wraps a memory backend and counts writes.
type countingBackend struct {
	*storage.MemoryBackend
	writes int
}

func (b *countingBackend) Set(ctx context.Context, key string, value []byte) error {
	b.writes++
	return b.MemoryBackend.Set(ctx, key, value)
}

func newTestRecords() (*countingBackend, storage.Records) {
	backend := &countingBackend{MemoryBackend: storage.NewMemoryBackend()}
	return backend, storage.NewAdapter(backend, zap.NewNop(), nil)
}

func testRecipe(id, title string) model.Recipe {
	return model.Recipe{
		ID:           id,
		Title:        title,
		Description:  "Descripción de " + title,
		PrepTime:     "10 minutos",
		CookTime:     "20 minutos",
		Ingredients:  []string{"sal", "aceite"},
		Instructions: []string{"Mezclar todo."},
		Utensils:     []string{"sartén"},
		Cost:         model.CostLow,
		DietType:     model.DietNormal,
		Origin:       model.OriginNational,
	}
}

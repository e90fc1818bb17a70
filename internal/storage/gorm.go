package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/homsent/homsent-chef/backend/internal/model"
)

// GormBackend stores records in the kv_records table of a SQL database.
type GormBackend struct {
	db *gorm.DB
}

var _ Backend = (*GormBackend)(nil)

// NewGormBackend expects the schema to be migrated already (see database.RunMigrations).
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func (g *GormBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rec model.Record
	err := g.db.WithContext(ctx).Where("key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query record: %w", err)
	}
	return []byte(rec.Value), true, nil
}

func (g *GormBackend) Set(ctx context.Context, key string, value []byte) error {
	rec := model.Record{Key: key, Value: string(value), UpdatedAt: time.Now()}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}
	return nil
}

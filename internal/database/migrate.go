package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/homsent/homsent-chef/backend/internal/model"
)

// RunMigrations creates or updates the tables used by the SQL persistence backend
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(&model.Record{}); err != nil {
		return fmt.Errorf("failed to migrate records table: %w", err)
	}
	log.Info("database schema up to date", zap.String("dialect", db.Dialector.Name()))
	return nil
}

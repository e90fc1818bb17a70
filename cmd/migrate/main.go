package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/homsent/homsent-chef/backend/config"
	"github.com/homsent/homsent-chef/backend/internal/database"
	"github.com/homsent/homsent-chef/backend/internal/logger"
)

func main() {
	// Parse command line flags
	backend := flag.String("backend", "", "SQL backend to migrate (sqlite or postgres); defaults to STORAGE_BACKEND")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if *backend != "" {
		cfg.StorageBackend = *backend
	}

	zl := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
	defer func() { _ = zl.Sync() }()

	db, err := database.Open(cfg, zl)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, zl); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	fmt.Println("All migrations applied successfully.")
}

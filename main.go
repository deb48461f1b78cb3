package main

import (
	"log"

	"github.com/firetourneys/arena/config"
	_ "github.com/firetourneys/arena/docs"
	"github.com/firetourneys/arena/internal/scheduler"
	"github.com/firetourneys/arena/internal/store"
	"github.com/firetourneys/arena/routes"
)

// @title Arena Tournament API
// @version 1.0
// @description Free Fire tournament registration and management service.
// @BasePath /api
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var st store.Storage
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := config.ConnectDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		dbStore := store.NewDatabaseStorage(db)
		if err := dbStore.AutoMigrate(); err != nil {
			log.Fatalf("AutoMigrate failed: %v", err)
		}
		log.Println("AutoMigrate successful")
		st = dbStore
	case config.DriverMemory:
		log.Println("Using in-memory storage; data will not survive a restart")
		st = store.NewMemStorage()
	}

	lifecycle, err := scheduler.New(st)
	if err != nil {
		log.Fatalf("Failed to build lifecycle scheduler: %v", err)
	}
	lifecycle.Start()
	defer func() {
		if err := lifecycle.Stop(); err != nil {
			log.Printf("Scheduler shutdown error: %v", err)
		}
	}()

	r := routes.SetupRoutes(st, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

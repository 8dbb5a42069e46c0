package main

import (
	"log"
	"time"

	"github.com/tomasvik/geovisits/internal/api"
	"github.com/tomasvik/geovisits/internal/config"
	"github.com/tomasvik/geovisits/internal/database"
	"github.com/tomasvik/geovisits/internal/handler"
	"github.com/tomasvik/geovisits/internal/repository"
	"github.com/tomasvik/geovisits/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	migrator := database.NewMigrationManager(db, cfg.MigrationsPath)
	if err := migrator.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	placeRepo := repository.NewPlaceRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	policyService, err := service.NewPolicyService(settingsRepo)
	if err != nil {
		log.Fatal("Failed to load detection policy:", err)
	}
	detectionService := service.NewDetectionService(db, placeRepo, candidateRepo, visitRepo, policyService)
	visitService := service.NewVisitService(visitRepo, candidateRepo)
	placeService := service.NewPlaceService(placeRepo)
	cleanupService := service.NewCleanupService(candidateRepo, visitRepo, policyService)

	// Periodic cleanup: evict abandoned candidates, close idle visits.
	go func() {
		ticker := time.NewTicker(cfg.CleanupInterval)
		defer ticker.Stop()
		for now := range ticker.C {
			if err := cleanupService.Run(now); err != nil {
				log.Printf("[CleanupService] run failed: %v", err)
			}
		}
	}()

	router := api.SetupRouter(api.Handlers{
		Ping:     handler.NewPingHandler(detectionService),
		Visit:    handler.NewVisitHandler(visitService),
		Place:    handler.NewPlaceHandler(placeService),
		Settings: handler.NewSettingsHandler(policyService, cleanupService),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

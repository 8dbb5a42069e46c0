package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-level configuration. Detection tuning lives in the
// app_settings row, not here.
type Config struct {
	Port            string
	DBPath          string
	MigrationsPath  string
	CleanupInterval time.Duration
}

// Load reads configuration from the environment, with a .env file as an
// optional source for local development
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/visits.db"
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}

	cleanupInterval := 2 * time.Minute
	if raw := os.Getenv("CLEANUP_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.Printf("Warning: invalid CLEANUP_INTERVAL %q, using default", raw)
		} else {
			cleanupInterval = d
		}
	}

	return &Config{
		Port:            port,
		DBPath:          dbPath,
		MigrationsPath:  migrationsPath,
		CleanupInterval: cleanupInterval,
	}
}

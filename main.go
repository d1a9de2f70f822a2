package main

import (
	"context"
	"os"

	"github.com/cortexai/cortex-api/internal/api"
	"github.com/cortexai/cortex-api/internal/config"
	"github.com/cortexai/cortex-api/internal/database"
	"github.com/cortexai/cortex-api/internal/httpserver"
	"github.com/cortexai/cortex-api/internal/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Init(cfg.LogLevel, !cfg.Production()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	// Set up database
	db, dialect, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db, dialect); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}
	log.Info().Str("dialect", string(dialect)).Msg("Database ready")

	router := api.NewRouter(cfg.CORS, api.NewServices(db, cfg))

	if err := httpserver.Run(context.Background(), httpserver.New(cfg.ServerPort, router)); err != nil {
		log.Error().Err(err).Msg("Server stopped")
		db.Close()
		os.Exit(1)
	}
}

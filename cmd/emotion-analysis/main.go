// Command emotion-analysis serves keyword-based emotion classification.
package main

import (
	"context"

	"github.com/cortexai/cortex-api/internal/api"
	"github.com/cortexai/cortex-api/internal/config"
	"github.com/cortexai/cortex-api/internal/httpserver"
	"github.com/cortexai/cortex-api/internal/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadService(8001)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := logger.Init(cfg.LogLevel, !cfg.Production()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	srv := httpserver.New(cfg.ServerPort, api.NewEmotionRouter(cfg.CORS))
	if err := httpserver.Run(context.Background(), srv); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

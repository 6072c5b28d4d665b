package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gharpey-console/internal/ai"
	"gharpey-console/internal/api"
	"gharpey-console/internal/config"
	"gharpey-console/internal/database"
	"gharpey-console/internal/ingest"
	"gharpey-console/internal/logger"
	"gharpey-console/internal/metrics"
	"gharpey-console/internal/webhook"
	"gharpey-console/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.Registry(cfg.MetricsNamespace)
	store := database.NewStore(db)
	assistant := ai.New(cfg.AI, m)
	hub := ws.NewHub()
	go hub.Run(ctx)

	ingestion := ingest.NewService(store, assistant, hub, m)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.Deps{
		Store:     store,
		Messages:  ingestion,
		Assistant: assistant,
		Webhooks:  webhook.NewHandler(cfg.VerifyToken, ingestion),
		Hub:       hub,
		Metrics:   m,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Bool("ai", assistant.Enabled()).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to run server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

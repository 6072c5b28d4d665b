package main

import (
	"context"

	"gharpey-console/internal/config"
	"gharpey-console/internal/database"
	"gharpey-console/internal/logger"
	"gharpey-console/internal/seed"

	"github.com/rs/zerolog/log"
)

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

	log.Info().Msg("Seeding database...")
	sum, err := seed.Run(context.Background(), database.NewStore(db))
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	log.Info().
		Int("contacts", sum.Contacts).
		Int("conversations", sum.Conversations).
		Int("messages", sum.Messages).
		Int("templates", sum.Templates).
		Msg("Seeding completed")
}

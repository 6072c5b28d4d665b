// Command migrate_data copies a SQLite console database into the database
// configured by the environment, typically postgres. Ids are preserved and
// rows already present in the destination are left alone.
package main

import (
	"context"
	"flag"

	"gharpey-console/internal/config"
	"gharpey-console/internal/database"
	"gharpey-console/internal/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	from := flag.String("from", "console.db", "path of the SQLite database to copy from")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if cfg.DBDriver == config.DriverSQLite && cfg.DBPath == *from {
		log.Fatal().Str("path", *from).Msg("Source and destination are the same database")
	}

	// 1. Source
	srcCfg := *cfg
	srcCfg.DBDriver = config.DriverSQLite
	srcCfg.DBPath = *from
	srcDB, err := database.Open(&srcCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to source SQLite")
	}
	log.Info().Str("path", *from).Msg("Connected to source")

	// 2. Destination
	dstDB, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to destination")
	}
	if err := database.Migrate(dstDB); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate destination")
	}

	log.Info().Str("driver", cfg.DBDriver).Msg("Starting data migration...")
	counts, err := database.NewStore(dstDB).CopyFrom(context.Background(), database.NewStore(srcDB))
	if err != nil {
		log.Fatal().Err(err).Msg("Data migration failed, destination left unchanged")
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	log.Info().Int("rows", total).Msg("Migration completed")
}

package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/locaux-booking-backend/internal/config"
	"github.com/nekogravitycat/locaux-booking-backend/internal/db"
	"github.com/nekogravitycat/locaux-booking-backend/internal/logger"
	"github.com/nekogravitycat/locaux-booking-backend/migrations"
)

func main() {
	action := flag.String("action", db.MigrateUp, "one of up, down, step-up, drop")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.LogLevel, cfg.IsProduction)

	if err := db.Migrate(migrations.FS, cfg.DBDSN, *action); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}

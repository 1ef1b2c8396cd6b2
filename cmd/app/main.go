package main

import (
	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	"github.com/ymjo140/rendezvous-merchant-sub000/di"
	"github.com/ymjo140/rendezvous-merchant-sub000/helper"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()
	logger.Configure(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Refusing to start")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http := di.InitializeService()
	http.Serve()
}

package main

import (
	"fixmycondo/config"
	"fixmycondo/di"
	"fixmycondo/helper"
	"fixmycondo/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title FixMyCondo API
// @version 1.0
// @description Complaint SLA tracking and facility booking for condominium management.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Run(cfg, helper.ActionUp); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}

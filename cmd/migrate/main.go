package main

import (
	"fixmycondo/config"
	"fixmycondo/helper"
	"fixmycondo/shared/logger"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if len(os.Args) < 2 {
		log.Fatal().Msgf("migration action is required, use one of %s", strings.Join(helper.Actions(), ", "))
	}

	if err := helper.Run(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}

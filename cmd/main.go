// Package main starts the account API: email-code logins, balances and
// checkout top-ups.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/alliterative/accountd/cmd/httpserver"
	"github.com/alliterative/accountd/internal/accountstore"
	"github.com/alliterative/accountd/internal/middleware"
	"github.com/alliterative/accountd/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	store, err := accountstore.New(config.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot initialize account store")
	}

	server, err := httpserver.New(store, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("ACCOUNT API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

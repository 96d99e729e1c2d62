package main

import (
	"os"

	"github.com/yichen/campuswork/internal/pkg/logger"
	"github.com/yichen/campuswork/internal/server"
)

// @title CampusWork API
// @version 1.0
// @description Administrative backend for a student organization work platform

// @host localhost:3000
// @BasePath /api
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}

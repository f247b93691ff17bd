package main

import (
	"os"

	"github.com/yigit/drivingschool/internal/pkg/logger" // Still needed for initial error logging
	"github.com/yigit/drivingschool/internal/server"
)

func main() {
	// NewServer orchestrates config, logger, backend client, sessions and router
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

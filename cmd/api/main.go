package main

import (
	"os"

	"github.com/yigit/canvasstudy/internal/pkg/logger"
	"github.com/yigit/canvasstudy/internal/server"
)

// @title Canvas Study Assistant API
// @version 1.0
// @description Reads Canvas LMS courses and files, extracts their text and turns it into study notes and answers.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey CanvasToken
// @in header
// @name Authorization
// @description Canvas API token, as an alternative to the apiToken field

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}

package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/findyourpeers/peers/internal/pkg/logger"
	"github.com/findyourpeers/peers/internal/server"
)

// @title findYourPeers API
// @version 1.0
// @description API for discovering interest groups, following them and posting to their feeds

// @contact.name API Support
// @contact.email support@findyourpeers.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	defaultPath := filepath.Join("configs", "config.yaml")
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		defaultPath = env
	}
	configPath := flag.String("config", defaultPath, "path to the YAML configuration file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}

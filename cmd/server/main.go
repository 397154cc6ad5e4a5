package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/zerox80/tresormatch/internal/server"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, using defaults")
	}

	srv, err := server.NewServer(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize server")
	}
	r := srv.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = srv.Config.Server.Port
	}

	logger.Info().Str("port", port).Msg("starting server")
	if err := r.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

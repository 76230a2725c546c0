package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roomhub/socket/config"
	"github.com/roomhub/socket/providers"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.FromEnv()

	app, err := providers.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build application")
	}

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server error")
		}
	}

	if err := app.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}

package main

import (
	"github.com/deppfellow/mystic-backend/internal/config"
	"github.com/deppfellow/mystic-backend/internal/handler"
	"github.com/deppfellow/mystic-backend/internal/logger"
	"github.com/deppfellow/mystic-backend/internal/server"
	"github.com/deppfellow/mystic-backend/internal/service"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root 'mystic' command and its subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mystic",
		Short:         "Lifestyle content backend: chat, horoscope, numerology, tarot and zodiac",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newLambdaCmd(),
		newNumerologyCmd(),
	)

	return rootCmd
}

// application is everything a transport needs, built from the environment.
type application struct {
	server   *server.Server
	handlers *handler.Handlers
}

func bootstrap() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, err
	}

	log := logger.NewLogger(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize server")
	}

	services, err := service.NewServices(srv)
	if err != nil {
		return nil, errors.Wrap(err, "could not create services")
	}

	return &application{
		server:   srv,
		handlers: handler.NewHandlers(srv, services),
	}, nil
}

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/mystic-backend/internal/router"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

// newServeCmd creates the 'serve' subcommand.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app.server.SetupHTTPServer(router.NewRouter(app.server, app.handlers))

			errCh := make(chan error, 1)
			go func() {
				errCh <- app.server.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			app.server.Logger.Info().Msg("shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := app.server.Shutdown(shutdownCtx); err != nil {
				app.server.Logger.Error().Err(err).Msg("server forced to shutdown")
				return err
			}

			app.server.Logger.Info().Msg("server exited")

			return nil
		},
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gilchrisn/random-walk-controversy/pkg/api"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	var (
		configFile string
		logLevel   string
		address    string
	)

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Serve RWC computations over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(configFile, logLevel, "info")
			if err != nil {
				return err
			}
			if address != "" {
				config.Set("server.address", address)
			}
			if err := config.Validate(); err != nil {
				return err
			}

			logger := config.CreateLoggerTo(cmd.ErrOrStderr())
			router := api.NewRouter(api.NewHandlers(config, logger), logger)

			server := &http.Server{
				Addr:         config.ServerAddress(),
				Handler:      router,
				ReadTimeout:  config.ServerReadTimeout(),
				WriteTimeout: config.ServerWriteTimeout(),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("address", server.Addr).Msg("HTTP server starting")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err, ok := <-errCh:
				if ok {
					return fmt.Errorf("failed to start server: %w", err)
				}
				return nil
			case <-quit:
				logger.Info().Msg("Shutdown signal received")
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			logger.Info().Msg("Server shutdown complete")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "path to a configuration file (yaml, json, toml)")
	f.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")
	f.StringVar(&address, "addr", "", "listen address (default from server.address)")
	return cmd
}

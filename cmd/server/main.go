package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/civic_pulse/mlservice/internal/app"
	"github.com/civic_pulse/mlservice/internal/catalog"
	"github.com/civic_pulse/mlservice/internal/config"
	"github.com/civic_pulse/mlservice/internal/db"
	httpapi "github.com/civic_pulse/mlservice/internal/http"
	"github.com/civic_pulse/mlservice/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := log.Level(level).With().Str("service", "complaints-ml").Logger()

	rootCmd := &cobra.Command{
		Use:   "mlservice",
		Short: "Civic complaint volume prediction service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg, logger)
		},
		SilenceUsage: true,
	}
	rootCmd.AddCommand(serveCmd(cfg, logger))
	rootCmd.AddCommand(predictCmd(cfg, logger))
	rootCmd.AddCommand(importCmd(cfg, logger))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg, logger)
		},
	}
}

func predictCmd(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "predict [address]",
		Short: "Run one prediction and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := app.Build(ctx, cfg, nil, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Service.Predict(ctx, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}

func importCmd(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "import [filename]",
		Short: "Replace the complaint history table with a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for import")
			}
			c, err := catalog.LoadCSV(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := db.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			defer store.Close()

			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}
			n, err := store.ReplaceComplaintRecords(ctx, c.Records())
			if err != nil {
				return err
			}
			logger.Info().Int64("rows", n).Str("file", args[0]).Msg("complaint history imported")
			return nil
		},
	}
}

func serve(cfg config.Config, logger zerolog.Logger) error {
	ctx := context.Background()
	metrics := observability.NewMetrics()

	a, err := app.Build(ctx, cfg, metrics, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load service state")
		return err
	}
	defer a.Close()

	router := httpapi.Router(cfg, a.Service, a.Categorizer, a.Ready, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
	return nil
}

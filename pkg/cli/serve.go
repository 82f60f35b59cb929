package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/cli/config"
	controller "github.com/m-mizutani/texpack/pkg/controller/http"
	"github.com/m-mizutani/texpack/pkg/usecase"
	"github.com/m-mizutani/texpack/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		fetchCfg   config.Fetch
		catalogCfg config.Catalog
		bundleCfg  config.Bundle
	)

	flags := append(serverCfg.Flags(), fetchCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, bundleCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			logger.Info("Starting texpack server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("model_hosts", serverCfg.ModelHosts),
				slog.Any("fetch", fetchCfg),
				slog.Any("catalog", catalogCfg.Sources),
			)

			f, closeFetcher, err := fetchCfg.NewFetcher(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeFetcher(); err != nil {
					logger.Warn("Failed to close fetcher", "error", err)
				}
			}()

			texturesMap, err := catalogCfg.Load(ctx, f)
			if err != nil {
				return err
			}
			logger.Info("Textures catalog ready", slog.Int("entries", len(texturesMap)))
			if len(serverCfg.ModelHosts) == 0 {
				logger.Warn("Model URLs are not restricted, set --allow-model-host to limit the hosts the server fetches from")
			}

			// Create use cases
			bundleUC := usecase.NewBundle(f, bundleCfg.Options(&fetchCfg)...)

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				bundleUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithTexturesMap(texturesMap),
				controller.WithModelHosts(serverCfg.ModelHosts...),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

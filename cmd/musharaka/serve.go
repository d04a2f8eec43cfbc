package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vrtu/musharaka/internal/api"
	"github.com/vrtu/musharaka/internal/cache"
	"github.com/vrtu/musharaka/internal/leads"
	"github.com/vrtu/musharaka/internal/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the calculator HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}

		logger := cfg.NewLogger()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		tracer, shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint, version, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Error("failed to shutdown tracing", "error", err)
			}
		}()

		var repo leads.Repository
		if cfg.DatabaseURL != "" {
			gormRepo, err := leads.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer gormRepo.Close()
			logger.Info("lead storage: postgres")
			repo = gormRepo
		} else {
			logger.Warn("DATABASE_URL not set, leads are kept in memory")
			repo = leads.NewMemoryRepository()
		}

		var responseCache cache.Cache
		if cfg.RedisAddr != "" {
			rc := cache.NewRedisCache(cfg.RedisAddr)
			if err := rc.Ping(ctx); err != nil {
				logger.Warn("redis unavailable, caching disabled", "addr", cfg.RedisAddr, "error", err)
				_ = rc.Close()
			} else {
				defer rc.Close()
				logger.Info("projection cache: redis", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
				responseCache = rc
			}
		}

		srv := api.NewServer(api.Options{
			Config:  cfg,
			Logger:  logger,
			Tracer:  tracer,
			Cache:   responseCache,
			Leads:   repo,
			Version: version,
		})

		return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Port))
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides PORT)")
}

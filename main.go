package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"student-performance-dashboard/app/engine"
	"student-performance-dashboard/app/render"
	"student-performance-dashboard/app/service"
	"student-performance-dashboard/config"
	"student-performance-dashboard/database"
	FiberApp "student-performance-dashboard/fiber"
	"student-performance-dashboard/logger"
	"student-performance-dashboard/route"
)

func main() {
	// 1. Load .env and configuration
	config.LoadEnv()
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Configure(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})

	policy, err := engine.ParseImputePolicy(cfg.Data.ImputePolicy)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid impute policy")
	}

	ctx := context.Background()

	// 2. Connect to the student source and the chart cache
	source, closeSource, err := database.OpenSource(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.Data.Source).Msg("failed to open student source")
	}
	defer closeSource()

	chartCache, closeCache, err := database.ConnectChartCache(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect chart cache")
	}
	defer closeCache()

	// 3. Load the first snapshot
	chart := render.Options{Width: cfg.Report.ChartWidth, Height: cfg.Report.ChartHeight}
	dashboard := service.NewDashboardService(source, chartCache, policy, chart)
	if _, err := dashboard.Load(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to load students")
	}

	// 4. Setup Fiber and routes
	app := FiberApp.SetupFiber()
	route.SetupRoutes(app, route.Deps{
		Dashboard: dashboard,
		Auth: service.NewAuthService(
			cfg.Auth.AdminUsername,
			cfg.Auth.AdminPasswordHash,
			cfg.Auth.JWTSecret,
			cfg.RefreshSecretOrDefault(),
		),
		AuthEnabled: cfg.Auth.Enabled,
		JWTSecret:   cfg.Auth.JWTSecret,
	})

	// 5. Start server
	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("server running")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logger.Error().Err(err).Msg("server stopped")
		}
	}()

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
}

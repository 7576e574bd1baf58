package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"realtime-task-manager/config"
	_ "realtime-task-manager/docs" // Swagger docs
	"realtime-task-manager/internal/bootstrap"
	"realtime-task-manager/internal/httpserver"
)

// @title       Realtime Task Manager API
// @description Task CRUD over a hosted REST table with image uploads and a realtime-mirrored list.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := bootstrap.NewLogger(cfg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Realtime Task Manager API...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Supabase URL: %s", cfg.Supabase.URL)

	// 3. Task domain
	taskUC, err := bootstrap.NewTaskUseCase(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize task domain: ", err)
		return
	}

	if err := taskUC.Mount(ctx); err != nil {
		logger.Error(ctx, "Failed to mount task mirror: ", err)
		return
	}
	defer func() {
		if err := taskUC.Unmount(context.Background()); err != nil {
			logger.Warnf(context.Background(), "Unmount: %v", err)
		}
	}()
	logger.Infof(ctx, "Mirroring %d tasks from %s", len(taskUC.Tasks()), cfg.Supabase.Table)

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		RateLimitPerMin: cfg.HTTPServer.RateLimitPerMin,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		TaskUseCase:     taskUC,
		Scope:           bootstrap.Scope(cfg),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

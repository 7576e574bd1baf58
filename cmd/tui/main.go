package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"realtime-task-manager/config"
	"realtime-task-manager/internal/bootstrap"
	"realtime-task-manager/internal/task/delivery/tui"
)

// defaultLogFile keeps log output off the terminal the UI draws on.
const defaultLogFile = "tasks-tui.log"

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}
	if len(cfg.Logger.OutputPaths) == 0 || onlyStdio(cfg.Logger.OutputPaths) {
		cfg.Logger.OutputPaths = []string{defaultLogFile}
	}

	// 2. Logger
	logger := bootstrap.NewLogger(cfg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Task domain
	taskUC, err := bootstrap.NewTaskUseCase(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize task domain: ", err)
		fmt.Println("Failed to initialize task domain: ", err)
		os.Exit(1)
	}

	if err := taskUC.Mount(ctx); err != nil {
		logger.Error(ctx, "Failed to mount task mirror: ", err)
		fmt.Println("Failed to subscribe to task changes: ", err)
		os.Exit(1)
	}

	// 4. Run
	runErr := tui.Run(ctx, logger, taskUC, bootstrap.Scope(cfg))

	if err := taskUC.Unmount(context.Background()); err != nil {
		logger.Warnf(context.Background(), "Unmount: %v", err)
	}
	if runErr != nil {
		logger.Error(ctx, "TUI stopped: ", runErr)
		fmt.Println("TUI stopped: ", runErr)
		os.Exit(1)
	}
}

func onlyStdio(paths []string) bool {
	for _, p := range paths {
		if p != "stdout" && p != "stderr" {
			return false
		}
	}
	return true
}

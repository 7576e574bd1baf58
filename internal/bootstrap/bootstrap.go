package bootstrap

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"realtime-task-manager/config"
	"realtime-task-manager/internal/task"
	supabaseRepo "realtime-task-manager/internal/task/repository/supabase"
	"realtime-task-manager/internal/task/usecase"
	pkgLog "realtime-task-manager/pkg/log"
	"realtime-task-manager/pkg/postgrest"
	"realtime-task-manager/pkg/realtime"
	"realtime-task-manager/pkg/storage"
)

// NewLogger builds the service logger from config.
func NewLogger(cfg config.LoggerConfig) pkgLog.Logger {
	return pkgLog.Init(pkgLog.ZapConfig{
		Level:        cfg.Level,
		Mode:         cfg.Mode,
		Encoding:     cfg.Encoding,
		ColorEnabled: cfg.ColorEnabled,
		OutputPaths:  cfg.OutputPaths,
		Rotate: pkgLog.RotateConfig{
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAgeDays,
		},
	})
}

// NewTaskUseCase wires the backend clients, repositories and use case.
// Every client authenticates with the same static token source.
func NewTaskUseCase(ctx context.Context, cfg *config.Config, l pkgLog.Logger) (task.UseCase, error) {
	// 1. Auth transport
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.Session.BearerToken(cfg.Supabase.AnonKey),
		TokenType:   "Bearer",
	})
	httpClient := oauth2.NewClient(ctx, ts)

	// 2. Backend clients
	rest := postgrest.NewClient(cfg.Supabase.URL+"/rest/v1", cfg.Supabase.AnonKey, httpClient).
		SetSchema(cfg.Supabase.Schema)
	objects := storage.NewClient(cfg.Supabase.URL+"/storage/v1", cfg.Supabase.AnonKey, httpClient)

	endpoint, err := realtime.EndpointFromURL(cfg.Supabase.URL)
	if err != nil {
		return nil, fmt.Errorf("realtime endpoint: %w", err)
	}
	rt := realtime.NewClient(endpoint, cfg.Supabase.AnonKey,
		realtime.WithTokenSource(ts),
		realtime.WithHeartbeatInterval(cfg.Realtime.HeartbeatInterval),
		realtime.WithJoinTimeout(cfg.Realtime.JoinTimeout),
	)

	// 3. Repositories
	repoCfg := supabaseRepo.Config{
		Table:   cfg.Supabase.Table,
		Schema:  cfg.Supabase.Schema,
		Bucket:  cfg.Supabase.Bucket,
		Channel: cfg.Supabase.Channel,
	}
	taskRepo := supabaseRepo.NewTaskRepository(rest, repoCfg, l)
	imageRepo := supabaseRepo.NewImageRepository(objects, repoCfg, l)
	feed := supabaseRepo.NewChangeFeed(rt, repoCfg, l)

	// 4. UseCase
	return usecase.New(l, taskRepo, imageRepo, feed), nil
}

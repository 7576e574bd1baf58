package supabase

import (
	"realtime-task-manager/internal/task/repository"
	pkgLog "realtime-task-manager/pkg/log"
	"realtime-task-manager/pkg/postgrest"
	"realtime-task-manager/pkg/realtime"
	"realtime-task-manager/pkg/storage"
)

// Config names the remote resources backing the task view.
type Config struct {
	Table   string // e.g. "tasks"
	Schema  string // e.g. "public"
	Bucket  string // e.g. "tasks-images"
	Channel string // e.g. "tasks-channel"
}

type taskRepository struct {
	client *postgrest.Client
	cfg    Config
	l      pkgLog.Logger
}

// NewTaskRepository creates the REST-backed tasks table repository.
func NewTaskRepository(client *postgrest.Client, cfg Config, l pkgLog.Logger) repository.TaskRepository {
	return &taskRepository{
		client: client,
		cfg:    cfg,
		l:      l,
	}
}

type imageRepository struct {
	client *storage.Client
	cfg    Config
	l      pkgLog.Logger
}

// NewImageRepository creates the object storage backed image repository.
func NewImageRepository(client *storage.Client, cfg Config, l pkgLog.Logger) repository.ImageRepository {
	return &imageRepository{
		client: client,
		cfg:    cfg,
		l:      l,
	}
}

type changeFeed struct {
	client *realtime.Client
	cfg    Config
	l      pkgLog.Logger
}

// NewChangeFeed creates the realtime change feed for the tasks table.
func NewChangeFeed(client *realtime.Client, cfg Config, l pkgLog.Logger) repository.ChangeFeed {
	return &changeFeed{
		client: client,
		cfg:    cfg,
		l:      l,
	}
}

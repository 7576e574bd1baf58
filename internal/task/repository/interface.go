package repository

import (
	"context"

	"realtime-task-manager/internal/model"
)

// TaskRepository is the interface for the remote tasks table.
type TaskRepository interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)
	UpdateTask(ctx context.Context, opt UpdateTaskOptions) error
	DeleteTask(ctx context.Context, id int64) error
}

// ImageRepository stores task images in object storage.
type ImageRepository interface {
	// UploadImage writes the object and returns its public URL.
	UploadImage(ctx context.Context, opt UploadImageOptions) (string, error)
}

// ChangeFeed delivers row-level change events of the tasks table.
type ChangeFeed interface {
	Subscribe(ctx context.Context, handler func(model.ChangeEvent)) (Subscription, error)
}

// Subscription is an open change feed.
type Subscription interface {
	// Unsubscribe releases the feed. The handler is not invoked after it returns.
	Unsubscribe() error
	// Done is closed once the feed stops delivering, for any reason.
	Done() <-chan struct{}
	// Err reports why the feed stopped, nil after a clean Unsubscribe.
	Err() error
}

package task

import (
	"context"

	"realtime-task-manager/internal/model"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// Mount activates the local mirror, performs the initial read and opens the change subscription.
	Mount(ctx context.Context) error
	// Unmount stops mirroring and releases the subscription. Safe to call more than once.
	Unmount(ctx context.Context) error

	// FetchTasks replaces the local mirror with a full read ordered by creation time.
	FetchTasks(ctx context.Context) ([]model.Task, error)
	// InsertTask creates one task owned by sc and re-fetches the list.
	InsertTask(ctx context.Context, sc model.Scope, input InsertTaskInput) (model.Task, error)
	// Submit uploads the form image if any, inserts the task and clears the form.
	Submit(ctx context.Context, sc model.Scope, form *Form) (model.Task, error)
	// UpdateTask changes the description of a task.
	UpdateTask(ctx context.Context, input UpdateTaskInput) error
	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id int64) error
	// UploadImage stores an image and returns its public URL, or "" on failure.
	UploadImage(ctx context.Context, input UploadImageInput) string

	// Tasks returns the mirrored list ordered by creation time.
	Tasks() []model.Task
	// Watch signals every change of the mirrored list until cancel is called.
	Watch() (<-chan struct{}, func())
}

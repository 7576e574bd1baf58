package usecase

import (
	"context"
	"fmt"

	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task"
	"realtime-task-manager/internal/task/repository"
)

// InsertTask creates a task owned by sc, then re-reads the table.
// A failed re-read is logged but does not fail the insert.
func (uc *implUseCase) InsertTask(ctx context.Context, sc model.Scope, input task.InsertTaskInput) (model.Task, error) {
	created, err := uc.repo.CreateTask(ctx, repository.CreateTaskOptions{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		UserID:      sc.UserID,
		Email:       sc.Email,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.InsertTask CreateTask: %v", err)
		return model.Task{}, fmt.Errorf("%w: %w", task.ErrInsertTask, err)
	}

	if _, err := uc.FetchTasks(ctx); err != nil {
		uc.l.Warnf(ctx, "uc.InsertTask FetchTasks: task %d created but list not refreshed: %v", created.ID, err)
	}

	return created, nil
}

// Submit is the create-form path. An image that fails to upload is dropped
// and the task is inserted without it. The form is cleared only on success.
func (uc *implUseCase) Submit(ctx context.Context, sc model.Scope, form *task.Form) (model.Task, error) {
	if form == nil {
		return model.Task{}, task.ErrNilForm
	}

	var imageURL string
	if form.HasImage() {
		imageURL = uc.UploadImage(ctx, *form.Image)
	}

	created, err := uc.InsertTask(ctx, sc, task.InsertTaskInput{
		Title:       form.Title,
		Description: form.Description,
		ImageURL:    imageURL,
	})
	if err != nil {
		return model.Task{}, err
	}

	form.Reset()
	return created, nil
}

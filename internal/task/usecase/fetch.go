package usecase

import (
	"context"
	"fmt"

	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task"
)

// FetchTasks reads the whole table and replaces the local mirror.
// On failure the previous mirror is kept.
func (uc *implUseCase) FetchTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := uc.repo.ListTasks(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "uc.FetchTasks ListTasks: %v", err)
		return nil, fmt.Errorf("%w: %w", task.ErrFetchTasks, err)
	}

	uc.store.Replace(tasks)
	mirroredTasks.Set(float64(uc.store.Len()))
	uc.l.Debugf(ctx, "uc.FetchTasks: mirrored %d tasks", len(tasks))

	return uc.store.List(), nil
}

func (uc *implUseCase) Tasks() []model.Task {
	return uc.store.List()
}

func (uc *implUseCase) Watch() (<-chan struct{}, func()) {
	return uc.store.Watch()
}

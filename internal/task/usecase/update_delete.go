package usecase

import (
	"context"
	"fmt"

	"realtime-task-manager/internal/task"
	"realtime-task-manager/internal/task/repository"
)

// UpdateTask changes the description remotely. The mirror follows through the
// change feed, not through this call.
func (uc *implUseCase) UpdateTask(ctx context.Context, input task.UpdateTaskInput) error {
	if input.ID <= 0 {
		return task.ErrInvalidID
	}

	if err := uc.repo.UpdateTask(ctx, repository.UpdateTaskOptions{
		ID:          input.ID,
		Description: input.Description,
	}); err != nil {
		uc.l.Errorf(ctx, "uc.UpdateTask UpdateTask: id=%d: %v", input.ID, err)
		return fmt.Errorf("%w: %w", task.ErrUpdateTask, err)
	}
	return nil
}

// DeleteTask removes the task remotely. The mirror follows through the change feed.
func (uc *implUseCase) DeleteTask(ctx context.Context, id int64) error {
	if id <= 0 {
		return task.ErrInvalidID
	}

	if err := uc.repo.DeleteTask(ctx, id); err != nil {
		uc.l.Errorf(ctx, "uc.DeleteTask DeleteTask: id=%d: %v", id, err)
		return fmt.Errorf("%w: %w", task.ErrDeleteTask, err)
	}
	return nil
}

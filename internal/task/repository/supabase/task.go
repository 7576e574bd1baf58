package supabase

import (
	"context"
	"fmt"

	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task/repository"
	"realtime-task-manager/pkg/postgrest"
)

func (r *taskRepository) ListTasks(ctx context.Context) ([]model.Task, error) {
	var rows []taskRow
	err := r.client.Select(ctx, r.cfg.Table, postgrest.Query{
		Order: []postgrest.Order{{Column: "created_at", Ascending: true}},
	}, &rows)
	if err != nil {
		r.l.Errorf(ctx, "supabase.taskRepository.ListTasks: %v", err)
		return nil, fmt.Errorf("%w: %w", repository.ErrFailedToList, err)
	}

	tasks := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		t, err := row.toModel()
		if err != nil {
			r.l.Warnf(ctx, "supabase.taskRepository.ListTasks: skip row %d: %v", row.ID, err)
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *taskRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	row := taskRow{
		Title:       opt.Title,
		Description: opt.Description,
		ImageURL:    nullable(opt.ImageURL),
		UserID:      nullable(opt.UserID),
		Email:       nullable(opt.Email),
	}

	var created taskRow
	if err := r.client.InsertOne(ctx, r.cfg.Table, row, &created); err != nil {
		r.l.Errorf(ctx, "supabase.taskRepository.CreateTask: %v", err)
		return model.Task{}, fmt.Errorf("%w: %w", repository.ErrFailedToInsert, err)
	}

	t, err := created.toModel()
	if err != nil {
		r.l.Errorf(ctx, "supabase.taskRepository.CreateTask: %v", err)
		return model.Task{}, fmt.Errorf("%w: %w", repository.ErrFailedToInsert, err)
	}
	return t, nil
}

func (r *taskRepository) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) error {
	err := r.client.Update(ctx, r.cfg.Table,
		updateRow{Description: opt.Description},
		[]postgrest.Filter{postgrest.Eq("id", opt.ID)},
	)
	if err != nil {
		r.l.Errorf(ctx, "supabase.taskRepository.UpdateTask: id=%d: %v", opt.ID, err)
		return fmt.Errorf("%w: %w", repository.ErrFailedToUpdate, err)
	}
	return nil
}

func (r *taskRepository) DeleteTask(ctx context.Context, id int64) error {
	if err := r.client.Delete(ctx, r.cfg.Table, []postgrest.Filter{postgrest.Eq("id", id)}); err != nil {
		r.l.Errorf(ctx, "supabase.taskRepository.DeleteTask: id=%d: %v", id, err)
		return fmt.Errorf("%w: %w", repository.ErrFailedToDelete, err)
	}
	return nil
}

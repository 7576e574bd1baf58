package usecase_test

import (
	"context"
	"errors"
	"testing"

	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task"
	"realtime-task-manager/internal/task/usecase"
)

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends Description Only And Leaves Mirror", func(t *testing.T) {
		repo := &mockTaskRepo{listFunc: func() ([]model.Task, error) {
			return []model.Task{{ID: 3, Description: "old", CreatedAt: t0}}, nil
		}}
		uc := usecase.New(&mockLogger{}, repo, &mockImageRepo{}, &mockFeed{})
		uc.FetchTasks(ctx)

		if err := uc.UpdateTask(ctx, task.UpdateTaskInput{ID: 3, Description: "new"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.updated) != 1 || repo.updated[0].ID != 3 || repo.updated[0].Description != "new" {
			t.Errorf("unexpected update: %+v", repo.updated)
		}
		if uc.Tasks()[0].Description != "old" {
			t.Errorf("mirror must only change through the change feed")
		}
	})

	t.Run("Remote Failure", func(t *testing.T) {
		repo := &mockTaskRepo{updateErr: errRemote}
		uc := usecase.New(&mockLogger{}, repo, &mockImageRepo{}, &mockFeed{})
		if err := uc.UpdateTask(ctx, task.UpdateTaskInput{ID: 3}); !errors.Is(err, task.ErrUpdateTask) {
			t.Errorf("expected ErrUpdateTask, got %v", err)
		}
	})

	t.Run("Invalid ID", func(t *testing.T) {
		repo := &mockTaskRepo{}
		uc := usecase.New(&mockLogger{}, repo, &mockImageRepo{}, &mockFeed{})
		if err := uc.UpdateTask(ctx, task.UpdateTaskInput{ID: 0}); !errors.Is(err, task.ErrInvalidID) {
			t.Errorf("expected ErrInvalidID, got %v", err)
		}
		if len(repo.updated) != 0 {
			t.Errorf("no remote call expected")
		}
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes Remotely And Leaves Mirror", func(t *testing.T) {
		repo := &mockTaskRepo{listFunc: func() ([]model.Task, error) {
			return []model.Task{{ID: 3, CreatedAt: t0}}, nil
		}}
		uc := usecase.New(&mockLogger{}, repo, &mockImageRepo{}, &mockFeed{})
		uc.FetchTasks(ctx)

		if err := uc.DeleteTask(ctx, 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.deleted) != 1 || repo.deleted[0] != 3 {
			t.Errorf("unexpected deletes: %v", repo.deleted)
		}
		if len(uc.Tasks()) != 1 {
			t.Errorf("mirror must only change through the change feed")
		}
	})

	t.Run("Remote Failure", func(t *testing.T) {
		repo := &mockTaskRepo{deleteErr: errRemote}
		uc := usecase.New(&mockLogger{}, repo, &mockImageRepo{}, &mockFeed{})
		if err := uc.DeleteTask(ctx, 3); !errors.Is(err, task.ErrDeleteTask) {
			t.Errorf("expected ErrDeleteTask, got %v", err)
		}
	})

	t.Run("Invalid ID", func(t *testing.T) {
		uc := usecase.New(&mockLogger{}, &mockTaskRepo{}, &mockImageRepo{}, &mockFeed{})
		if err := uc.DeleteTask(ctx, -1); !errors.Is(err, task.ErrInvalidID) {
			t.Errorf("expected ErrInvalidID, got %v", err)
		}
	})
}

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task"
	"realtime-task-manager/internal/task/usecase"
)

func TestMount(t *testing.T) {
	ctx := context.Background()

	t.Run("Seeds Mirror And Applies Events", func(t *testing.T) {
		repo := &mockTaskRepo{listFunc: func() ([]model.Task, error) {
			return []model.Task{{ID: 1, Title: "a", CreatedAt: t0}}, nil
		}}
		feed := &mockFeed{}
		uc := usecase.New(&mockLogger{}, repo, &mockImageRepo{}, feed)

		if err := uc.Mount(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer uc.Unmount(ctx)

		if feed.subscribes != 1 || repo.listCount() != 1 {
			t.Fatalf("expected one read and one subscription, got %d/%d", repo.listCount(), feed.subscribes)
		}

		feed.deliver(model.ChangeEvent{Type: model.ChangeInsert, New: model.Task{ID: 2, Title: "b", CreatedAt: t0.Add(time.Second)}})
		feed.deliver(model.ChangeEvent{Type: model.ChangeInsert, New: model.Task{ID: 2, Title: "b", CreatedAt: t0.Add(time.Second)}})
		feed.deliver(model.ChangeEvent{Type: model.ChangeUpdate, New: model.Task{ID: 1, Title: "a", Description: "edited", CreatedAt: t0}})

		list := uc.Tasks()
		if len(list) != 2 {
			t.Fatalf("duplicate insert should leave one entry, got %+v", list)
		}
		if list[0].Description != "edited" || list[1].ID != 2 {
			t.Errorf("unexpected list: %+v", list)
		}

		feed.deliver(model.ChangeEvent{Type: model.ChangeDelete, Old: model.Task{ID: 1}})
		if list := uc.Tasks(); len(list) != 1 || list[0].ID != 2 {
			t.Errorf("expected id 1 removed, got %+v", list)
		}
	})

	t.Run("Mount Twice", func(t *testing.T) {
		feed := &mockFeed{}
		uc := usecase.New(&mockLogger{}, &mockTaskRepo{}, &mockImageRepo{}, feed)
		if err := uc.Mount(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer uc.Unmount(ctx)

		if err := uc.Mount(ctx); !errors.Is(err, task.ErrAlreadyMounted) {
			t.Errorf("expected ErrAlreadyMounted, got %v", err)
		}
		if feed.subscribes != 1 {
			t.Errorf("expected a single subscription, got %d", feed.subscribes)
		}
	})

	t.Run("Fetch Failure Still Subscribes", func(t *testing.T) {
		repo := &mockTaskRepo{listFunc: func() ([]model.Task, error) { return nil, errRemote }}
		feed := &mockFeed{}
		uc := usecase.New(&mockLogger{}, repo, &mockImageRepo{}, feed)

		if err := uc.Mount(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer uc.Unmount(ctx)

		feed.deliver(model.ChangeEvent{Type: model.ChangeInsert, New: model.Task{ID: 5, CreatedAt: t0}})
		if len(uc.Tasks()) != 1 {
			t.Errorf("events should still be mirrored after a failed initial read")
		}
	})

	t.Run("Subscribe Failure", func(t *testing.T) {
		feed := &mockFeed{err: errRemote}
		uc := usecase.New(&mockLogger{}, &mockTaskRepo{}, &mockImageRepo{}, feed)

		if err := uc.Mount(ctx); !errors.Is(err, task.ErrSubscribe) {
			t.Fatalf("expected ErrSubscribe, got %v", err)
		}

		feed.err = nil
		if err := uc.Mount(ctx); err != nil {
			t.Errorf("mount should be retryable after a failed subscribe: %v", err)
		}
		uc.Unmount(ctx)
	})
}

func TestUnmount(t *testing.T) {
	ctx := context.Background()

	t.Run("Releases Exactly Once", func(t *testing.T) {
		feed := &mockFeed{}
		uc := usecase.New(&mockLogger{}, &mockTaskRepo{}, &mockImageRepo{}, feed)
		if err := uc.Mount(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for i := 0; i < 3; i++ {
			if err := uc.Unmount(ctx); err != nil {
				t.Errorf("unmount %d: unexpected error: %v", i, err)
			}
		}
		if got := feed.last.unsubscribeCount(); got != 1 {
			t.Errorf("expected exactly one unsubscribe, got %d", got)
		}
	})

	t.Run("Unmount Without Mount", func(t *testing.T) {
		uc := usecase.New(&mockLogger{}, &mockTaskRepo{}, &mockImageRepo{}, &mockFeed{})
		if err := uc.Unmount(ctx); err != nil {
			t.Errorf("expected no-op, got %v", err)
		}
	})

	t.Run("No Mutation After Unmount", func(t *testing.T) {
		repo := &mockTaskRepo{listFunc: func() ([]model.Task, error) {
			return []model.Task{{ID: 1, CreatedAt: t0}}, nil
		}}
		feed := &mockFeed{}
		uc := usecase.New(&mockLogger{}, repo, &mockImageRepo{}, feed)
		if err := uc.Mount(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		uc.Unmount(ctx)

		feed.deliverLate(model.ChangeEvent{Type: model.ChangeInsert, New: model.Task{ID: 2, CreatedAt: t0}})
		feed.deliverLate(model.ChangeEvent{Type: model.ChangeDelete, Old: model.Task{ID: 1}})

		if list := uc.Tasks(); len(list) != 1 || list[0].ID != 1 {
			t.Errorf("mirror mutated after Unmount: %+v", list)
		}
	})

	t.Run("Remount After Drop", func(t *testing.T) {
		feed := &mockFeed{}
		uc := usecase.New(&mockLogger{}, &mockTaskRepo{}, &mockImageRepo{}, feed)
		if err := uc.Mount(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		feed.last.drop(errors.New("socket closed"))

		if err := uc.Unmount(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := uc.Mount(ctx); err != nil {
			t.Fatalf("remount failed: %v", err)
		}
		defer uc.Unmount(ctx)
		if feed.subscribes != 2 {
			t.Errorf("expected a fresh subscription, got %d", feed.subscribes)
		}
	})
}

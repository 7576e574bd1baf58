package usecase

import (
	"context"
	"fmt"

	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task"
	"realtime-task-manager/internal/task/repository"
)

// Mount activates the mirror, seeds it with a full read and opens the change
// feed. A failed initial read is logged and mirroring still starts.
func (uc *implUseCase) Mount(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.mounted {
		return task.ErrAlreadyMounted
	}

	uc.store.Activate()

	if _, err := uc.FetchTasks(ctx); err != nil {
		uc.l.Warnf(ctx, "uc.Mount FetchTasks: starting with previous list: %v", err)
	}

	sub, err := uc.feed.Subscribe(ctx, uc.applyChange)
	if err != nil {
		uc.store.Deactivate()
		uc.l.Errorf(ctx, "uc.Mount Subscribe: %v", err)
		return fmt.Errorf("%w: %w", task.ErrSubscribe, err)
	}

	uc.sub = sub
	uc.mounted = true
	go uc.watchFeed(sub)

	uc.l.Infof(ctx, "uc.Mount: mirroring %d tasks", uc.store.Len())
	return nil
}

// Unmount stops mirroring before releasing the feed, so no event delivered
// during teardown can change the list. Later calls are no-ops.
func (uc *implUseCase) Unmount(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.mounted {
		return nil
	}

	uc.mounted = false
	uc.store.Deactivate()

	sub := uc.sub
	uc.sub = nil
	if err := sub.Unsubscribe(); err != nil {
		uc.l.Warnf(ctx, "uc.Unmount Unsubscribe: %v", err)
		return fmt.Errorf("%w: %w", task.ErrUnsubscribe, err)
	}

	uc.l.Infof(ctx, "uc.Unmount: change feed released")
	return nil
}

// applyChange runs on the feed's delivery goroutine.
func (uc *implUseCase) applyChange(ev model.ChangeEvent) {
	result := "ignored"
	if uc.store.Apply(ev) {
		result = "applied"
		mirroredTasks.Set(float64(uc.store.Len()))
	}
	changeEventsTotal.WithLabelValues(string(ev.Type), result).Inc()
}

// watchFeed reports a feed that stops on its own. There is no reconnect; the
// list stays as it was until the next Mount.
func (uc *implUseCase) watchFeed(sub repository.Subscription) {
	<-sub.Done()
	if err := sub.Err(); err != nil {
		uc.l.Warnf(context.Background(), "uc.watchFeed: change feed dropped, list is no longer live: %v", err)
	}
}

package supabase

import (
	"context"
	"fmt"

	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task/repository"
	"realtime-task-manager/pkg/realtime"
)

// Subscribe opens the tasks channel for every change of the configured table.
// Events that cannot be decoded are logged and dropped.
func (f *changeFeed) Subscribe(ctx context.Context, handler func(model.ChangeEvent)) (repository.Subscription, error) {
	filter := realtime.ChangeFilter{
		Event:  "*",
		Schema: f.cfg.Schema,
		Table:  f.cfg.Table,
	}

	sub, err := f.client.Subscribe(ctx, f.cfg.Channel, filter, func(d realtime.ChangeData) {
		ev, err := toChangeEvent(d)
		if err != nil {
			f.l.Warnf(context.Background(), "supabase.changeFeed: drop %s event: %v", d.Type, err)
			return
		}
		handler(ev)
	})
	if err != nil {
		f.l.Errorf(ctx, "supabase.changeFeed.Subscribe: channel=%s: %v", f.cfg.Channel, err)
		return nil, fmt.Errorf("%w: %w", repository.ErrFailedToSubscribe, err)
	}
	return sub, nil
}

func toChangeEvent(d realtime.ChangeData) (model.ChangeEvent, error) {
	ev := model.ChangeEvent{Type: model.ChangeType(d.Type)}

	switch ev.Type {
	case model.ChangeInsert, model.ChangeUpdate, model.ChangeDelete:
	default:
		return ev, fmt.Errorf("unknown change type %q", d.Type)
	}

	var err error
	if ev.New, err = decodeRecord(d.Record); err != nil {
		return ev, err
	}
	if ev.Old, err = decodeRecord(d.OldRecord); err != nil {
		return ev, err
	}
	if ev.CommitTimestamp, err = parseTimestamp(d.CommitTimestamp); err != nil {
		return ev, err
	}
	return ev, nil
}

package cache

import (
	"maps"
	"slices"

	"realtime-task-manager/internal/model"
)

// Snapshot is the local mirror of the remote table keyed by task id.
type Snapshot map[int64]model.Task

// FromList builds a snapshot from a full read. Later rows win on duplicate ids.
func FromList(tasks []model.Task) Snapshot {
	s := make(Snapshot, len(tasks))
	for _, t := range tasks {
		if t.ID == 0 {
			continue
		}
		s[t.ID] = t
	}
	return s
}

// ApplyChangeEvent returns the snapshot that results from applying ev to s.
// s is never mutated. Events without a usable id are ignored.
func ApplyChangeEvent(s Snapshot, ev model.ChangeEvent) Snapshot {
	next, _ := apply(s, ev)
	return next
}

// apply reports whether ev changed anything. When it did not, s is returned as is.
func apply(s Snapshot, ev model.ChangeEvent) (Snapshot, bool) {
	switch ev.Type {
	case model.ChangeInsert, model.ChangeUpdate:
		if ev.New.ID == 0 {
			return s, false
		}
		next := maps.Clone(s)
		if next == nil {
			next = make(Snapshot, 1)
		}
		next[ev.New.ID] = ev.New
		return next, true
	case model.ChangeDelete:
		if _, ok := s[ev.Old.ID]; !ok {
			return s, false
		}
		next := maps.Clone(s)
		delete(next, ev.Old.ID)
		return next, true
	default:
		return s, false
	}
}

// Ordered lists the snapshot by creation time, oldest first.
func (s Snapshot) Ordered() []model.Task {
	out := slices.Collect(maps.Values(s))
	slices.SortFunc(out, func(a, b model.Task) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

package cache

import (
	"sync"

	"realtime-task-manager/internal/model"
)

// Store holds the current snapshot for a mounted view.
// Change events are applied only while the store is active.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	active   bool

	watchMu  sync.Mutex
	watchers map[int]chan struct{}
	nextID   int
}

func NewStore() *Store {
	return &Store{
		snapshot: Snapshot{},
		watchers: make(map[int]chan struct{}),
	}
}

// Activate starts accepting change events.
func (s *Store) Activate() {
	s.mu.Lock()
	s.active = true
	s.mu.Unlock()
}

// Deactivate stops accepting change events. The current snapshot is kept.
func (s *Store) Deactivate() {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}

func (s *Store) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Replace swaps in the result of a full read.
func (s *Store) Replace(tasks []model.Task) {
	s.mu.Lock()
	s.snapshot = FromList(tasks)
	s.mu.Unlock()
	s.notify()
}

// Apply reconciles one change event. It reports whether the snapshot changed.
func (s *Store) Apply(ev model.ChangeEvent) bool {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return false
	}
	next, changed := apply(s.snapshot, ev)
	s.snapshot = next
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return changed
}

// List returns the tasks ordered by creation time.
func (s *Store) List() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Ordered()
}

func (s *Store) Get(id int64) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.snapshot[id]
	return t, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshot)
}

// Watch returns a channel signalled after every snapshot change.
// Signals coalesce: a slow reader sees one pending signal, not one per change.
// cancel closes the channel, so a blocked reader is released.
func (s *Store) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.watchMu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = ch
	s.watchMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.watchMu.Lock()
			defer s.watchMu.Unlock()
			delete(s.watchers, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) notify() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

package usecase_test

import (
	"context"
	"errors"
	"io"
	"sync"

	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task/repository"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

var errRemote = errors.New("remote unavailable")

// Mock task repository
type mockTaskRepo struct {
	mu sync.Mutex

	listFunc   func() ([]model.Task, error)
	createFunc func(opt repository.CreateTaskOptions) (model.Task, error)
	updateErr  error
	deleteErr  error

	listCalls int
	created   []repository.CreateTaskOptions
	updated   []repository.UpdateTaskOptions
	deleted   []int64
}

func (m *mockTaskRepo) ListTasks(ctx context.Context) ([]model.Task, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	if m.listFunc != nil {
		return m.listFunc()
	}
	return nil, nil
}

func (m *mockTaskRepo) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	m.mu.Lock()
	m.created = append(m.created, opt)
	m.mu.Unlock()
	if m.createFunc != nil {
		return m.createFunc(opt)
	}
	return model.Task{ID: 1, Title: opt.Title, Description: opt.Description, ImageURL: opt.ImageURL}, nil
}

func (m *mockTaskRepo) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated = append(m.updated, opt)
	return m.updateErr
}

func (m *mockTaskRepo) DeleteTask(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	return m.deleteErr
}

func (m *mockTaskRepo) listCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// Mock image repository
type mockImageRepo struct {
	url     string
	err     error
	uploads []repository.UploadImageOptions
	bodies  []string
}

func (m *mockImageRepo) UploadImage(ctx context.Context, opt repository.UploadImageOptions) (string, error) {
	m.uploads = append(m.uploads, opt)
	if opt.Body != nil {
		raw, _ := io.ReadAll(opt.Body)
		m.bodies = append(m.bodies, string(raw))
	}
	return m.url, m.err
}

// Mock change feed. deliver pushes an event through the registered handler
// the way a live subscription would.
type mockFeed struct {
	mu         sync.Mutex
	err        error
	handler    func(model.ChangeEvent)
	subscribes int
	last       *mockSubscription
}

func (m *mockFeed) Subscribe(ctx context.Context, handler func(model.ChangeEvent)) (repository.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribes++
	if m.err != nil {
		return nil, m.err
	}
	m.handler = handler
	m.last = &mockSubscription{done: make(chan struct{})}
	return m.last, nil
}

func (m *mockFeed) deliver(ev model.ChangeEvent) {
	m.mu.Lock()
	h := m.handler
	sub := m.last
	m.mu.Unlock()
	if h == nil || sub.isClosed() {
		return
	}
	h(ev)
}

// deliverLate calls the handler even after Unsubscribe, simulating an event
// that was already in flight during teardown.
func (m *mockFeed) deliverLate(ev model.ChangeEvent) {
	m.mu.Lock()
	h := m.handler
	m.mu.Unlock()
	if h != nil {
		h(ev)
	}
}

type mockSubscription struct {
	mu           sync.Mutex
	done         chan struct{}
	closed       bool
	unsubscribes int
	dropErr      error
}

func (s *mockSubscription) Unsubscribe() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsubscribes++
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	return nil
}

func (s *mockSubscription) Done() <-chan struct{} { return s.done }

func (s *mockSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropErr
}

// drop simulates the server closing the channel.
func (s *mockSubscription) drop(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropErr = err
	if !s.closed {
		s.closed = true
		close(s.done)
	}
}

func (s *mockSubscription) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *mockSubscription) unsubscribeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubscribes
}

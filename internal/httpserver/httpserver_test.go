package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"realtime-task-manager/internal/httpserver"
	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task"
	"realtime-task-manager/pkg/response"
)

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

type stubUseCase struct{ tasks []model.Task }

func (s *stubUseCase) Mount(ctx context.Context) error   { return nil }
func (s *stubUseCase) Unmount(ctx context.Context) error { return nil }
func (s *stubUseCase) FetchTasks(ctx context.Context) ([]model.Task, error) {
	return s.tasks, nil
}
func (s *stubUseCase) InsertTask(ctx context.Context, sc model.Scope, input task.InsertTaskInput) (model.Task, error) {
	return model.Task{}, nil
}
func (s *stubUseCase) Submit(ctx context.Context, sc model.Scope, form *task.Form) (model.Task, error) {
	return model.Task{}, nil
}
func (s *stubUseCase) UpdateTask(ctx context.Context, input task.UpdateTaskInput) error { return nil }
func (s *stubUseCase) DeleteTask(ctx context.Context, id int64) error                  { return nil }
func (s *stubUseCase) UploadImage(ctx context.Context, input task.UploadImageInput) string {
	return ""
}
func (s *stubUseCase) Tasks() []model.Task { return s.tasks }
func (s *stubUseCase) Watch() (<-chan struct{}, func()) {
	return make(chan struct{}), func() {}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  httpserver.Config
	}{
		{name: "Missing Mode", cfg: httpserver.Config{Port: 8080, TaskUseCase: &stubUseCase{}}},
		{name: "Missing Port", cfg: httpserver.Config{Mode: "test", TaskUseCase: &stubUseCase{}}},
		{name: "Missing Use Case", cfg: httpserver.Config{Mode: "test", Port: 8080}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := httpserver.New(&mockLogger{}, tc.cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRoutes(t *testing.T) {
	srv, err := httpserver.New(&mockLogger{}, httpserver.Config{
		Port:            8080,
		Mode:            "test",
		Environment:     "development",
		RateLimitPerMin: 6000,
		TaskUseCase:     &stubUseCase{tasks: []model.Task{{ID: 1, Title: "a"}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	handler, err := srv.Handler()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("Health Endpoints", func(t *testing.T) {
		for _, path := range []string{"/health", "/ready", "/live"} {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			if w.Code != http.StatusOK {
				t.Errorf("%s: expected 200, got %d", path, w.Code)
			}
		}
	})

	t.Run("Ready Reports Mirror Size", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

		var resp response.Resp
		json.Unmarshal(w.Body.Bytes(), &resp)
		data, _ := resp.Data.(map[string]any)
		if data["tasks"] != float64(1) {
			t.Errorf("expected tasks=1, got %v", data["tasks"])
		}
	})

	t.Run("Task List With Request ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Header().Get("X-Request-ID") == "" {
			t.Error("expected request id header")
		}
	})

	t.Run("Metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "http_requests_total") {
			t.Errorf("expected prometheus output, got %d", w.Code)
		}
	})

	t.Run("Unknown Route", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/tasks", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		var resp response.Resp
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.ErrorCode != http.StatusNotFound {
			t.Errorf("expected error code 404, got %d", resp.ErrorCode)
		}
	})
}

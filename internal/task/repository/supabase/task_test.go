package supabase_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task/repository"
	"realtime-task-manager/internal/task/repository/supabase"
	"realtime-task-manager/pkg/postgrest"
	"realtime-task-manager/pkg/realtime"
	"realtime-task-manager/pkg/storage"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

var cfg = supabase.Config{
	Table:   "tasks",
	Schema:  "public",
	Bucket:  "tasks-images",
	Channel: "tasks-channel",
}

func TestTaskRepository(t *testing.T) {
	var (
		lastQuery  url.Values
		lastBody   map[string]any
		lastPrefer string
		failNext   bool
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/v1/tasks", func(w http.ResponseWriter, r *http.Request) {
		lastQuery = r.URL.Query()
		lastPrefer = r.Header.Get("Prefer")
		lastBody = nil
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			json.Unmarshal(raw, &lastBody)
		}
		w.Header().Set("Content-Type", "application/json")

		if failNext {
			failNext = false
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":"PGRST301","message":"JWT expired"}`))
			return
		}

		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`[
				{"id":1,"title":"first","description":"a","created_at":"2024-05-01T10:00:00.123456+00:00","image_url":null,"user_id":"u1","email":"u1@example.com"},
				{"id":2,"title":"bad","description":"b","created_at":"not a time","image_url":null},
				{"id":3,"title":"third","description":"c","created_at":"2024-05-01 10:00:02.5+00","image_url":"http://img/3.png"}
			]`))
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":10,"title":"new","description":"d","created_at":"2024-05-02T09:00:00Z","image_url":null,"user_id":"u1","email":"u1@example.com"}`))
		case http.MethodPatch, http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := postgrest.NewClient(ts.URL+"/rest/v1", "anon-key", nil)
	repo := supabase.NewTaskRepository(client, cfg, &mockLogger{})
	ctx := context.Background()

	t.Run("ListTasks", func(t *testing.T) {
		tasks, err := repo.ListTasks(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastQuery.Get("order") != "created_at.asc" || lastQuery.Get("select") != "*" {
			t.Errorf("unexpected query: %v", lastQuery)
		}
		if lastQuery.Has("limit") {
			t.Errorf("full read must not be limited, got limit=%s", lastQuery.Get("limit"))
		}
		if len(tasks) != 2 {
			t.Fatalf("expected the unparseable row to be skipped, got %d tasks", len(tasks))
		}
		if tasks[0].ImageURL != "" || tasks[0].Email != "u1@example.com" {
			t.Errorf("unexpected first task: %+v", tasks[0])
		}
		want := time.Date(2024, 5, 1, 10, 0, 2, 500000000, time.UTC)
		if !tasks[1].CreatedAt.Equal(want) || tasks[1].ImageURL != "http://img/3.png" {
			t.Errorf("unexpected third task: %+v", tasks[1])
		}
	})

	t.Run("ListTasks Error", func(t *testing.T) {
		failNext = true
		_, err := repo.ListTasks(ctx)
		if !errors.Is(err, repository.ErrFailedToList) {
			t.Fatalf("expected ErrFailedToList, got %v", err)
		}
		var apiErr *postgrest.APIError
		if !errors.As(err, &apiErr) || apiErr.Code != "PGRST301" {
			t.Errorf("expected wrapped API error, got %v", err)
		}
	})

	t.Run("CreateTask", func(t *testing.T) {
		created, err := repo.CreateTask(ctx, repository.CreateTaskOptions{
			Title:       "new",
			Description: "d",
			UserID:      "u1",
			Email:       "u1@example.com",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID != 10 || created.HasImage() {
			t.Errorf("unexpected created task: %+v", created)
		}
		if lastPrefer != "return=representation" {
			t.Errorf("expected representation preference, got %q", lastPrefer)
		}
		if v, ok := lastBody["image_url"]; !ok || v != nil {
			t.Errorf("expected explicit null image_url, got %v", lastBody)
		}
		if _, ok := lastBody["id"]; ok {
			t.Errorf("id must not be sent on insert: %v", lastBody)
		}
		if lastBody["user_id"] != "u1" || lastBody["email"] != "u1@example.com" {
			t.Errorf("owner fields not stamped: %v", lastBody)
		}
	})

	t.Run("CreateTask Error", func(t *testing.T) {
		failNext = true
		_, err := repo.CreateTask(ctx, repository.CreateTaskOptions{Title: "x"})
		if !errors.Is(err, repository.ErrFailedToInsert) {
			t.Errorf("expected ErrFailedToInsert, got %v", err)
		}
	})

	t.Run("UpdateTask", func(t *testing.T) {
		if err := repo.UpdateTask(ctx, repository.UpdateTaskOptions{ID: 3, Description: "changed"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastQuery.Get("id") != "eq.3" {
			t.Errorf("unexpected filter: %v", lastQuery)
		}
		if len(lastBody) != 1 || lastBody["description"] != "changed" {
			t.Errorf("expected only description in body, got %v", lastBody)
		}
	})

	t.Run("DeleteTask", func(t *testing.T) {
		if err := repo.DeleteTask(ctx, 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastQuery.Get("id") != "eq.3" {
			t.Errorf("unexpected filter: %v", lastQuery)
		}
	})

	t.Run("DeleteTask Error", func(t *testing.T) {
		failNext = true
		if err := repo.DeleteTask(ctx, 3); !errors.Is(err, repository.ErrFailedToDelete) {
			t.Errorf("expected ErrFailedToDelete, got %v", err)
		}
	})
}

func TestImageRepository(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(gotPath, "taken") {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`))
			return
		}
		w.Write([]byte(`{"Key":"x","Id":"1"}`))
	}))
	defer ts.Close()

	client := storage.NewClient(ts.URL+"/storage/v1", "anon-key", nil)
	repo := supabase.NewImageRepository(client, cfg, &mockLogger{})
	now := time.UnixMilli(1700000000000)

	t.Run("Upload Returns Public URL", func(t *testing.T) {
		got, err := repo.UploadImage(context.Background(), repository.UploadImageOptions{
			FileName:    "/home/me/cat.png",
			ContentType: "image/png",
			Body:        strings.NewReader("png"),
			Now:         now,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotPath != "/storage/v1/object/tasks-images/cat.png-1700000000000" {
			t.Errorf("unexpected object path: %s", gotPath)
		}
		want := ts.URL + "/storage/v1/object/public/tasks-images/cat.png-1700000000000"
		if got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	})

	t.Run("Upload Failure", func(t *testing.T) {
		got, err := repo.UploadImage(context.Background(), repository.UploadImageOptions{
			FileName: "taken.png",
			Body:     strings.NewReader("png"),
			Now:      now,
		})
		if !errors.Is(err, repository.ErrFailedToUpload) || got != "" {
			t.Errorf("expected ErrFailedToUpload and empty URL, got %q, %v", got, err)
		}
	})

	t.Run("Empty File Name", func(t *testing.T) {
		_, err := repo.UploadImage(context.Background(), repository.UploadImageOptions{Body: strings.NewReader("x")})
		if !errors.Is(err, repository.ErrEmptyFileName) {
			t.Errorf("expected ErrEmptyFileName, got %v", err)
		}
	})
}

func TestChangeFeedSubscribeError(t *testing.T) {
	client := realtime.NewClient("ws://localhost:59998/realtime/v1/websocket", "anon-key")
	feed := supabase.NewChangeFeed(client, cfg, &mockLogger{})

	_, err := feed.Subscribe(context.Background(), func(model.ChangeEvent) {})
	if !errors.Is(err, repository.ErrFailedToSubscribe) {
		t.Errorf("expected ErrFailedToSubscribe, got %v", err)
	}
}

package supabase

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"realtime-task-manager/internal/model"
)

// taskRow is the wire shape of a tasks table row.
type taskRow struct {
	ID          int64   `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at,omitempty"`
	ImageURL    *string `json:"image_url"`
	UserID      *string `json:"user_id,omitempty"`
	Email       *string `json:"email,omitempty"`
}

// updateRow carries the only column a PATCH may touch.
type updateRow struct {
	Description string `json:"description"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp accepts RFC3339 and the Postgres text layouts.
// Values without a zone are taken as UTC.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (r taskRow) toModel() (model.Task, error) {
	createdAt, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return model.Task{}, err
	}
	return model.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   createdAt,
		ImageURL:    deref(r.ImageURL),
		UserID:      deref(r.UserID),
		Email:       deref(r.Email),
	}, nil
}

// decodeRecord converts a realtime record. A null or empty record yields a zero task.
func decodeRecord(raw json.RawMessage) (model.Task, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return model.Task{}, nil
	}
	var row taskRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return model.Task{}, fmt.Errorf("decode record: %w", err)
	}
	return row.toModel()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

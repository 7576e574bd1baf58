package repository

import (
	"io"
	"time"
)

// CreateTaskOptions holds the columns written on insert.
type CreateTaskOptions struct {
	Title       string
	Description string
	ImageURL    string // Stored as NULL when empty
	UserID      string
	Email       string
}

// UpdateTaskOptions holds the PATCH parameters.
type UpdateTaskOptions struct {
	ID          int64
	Description string
}

// UploadImageOptions describes one object to store.
type UploadImageOptions struct {
	FileName    string
	ContentType string
	Body        io.Reader
	Now         time.Time // Used for the key suffix; zero means time.Now
}

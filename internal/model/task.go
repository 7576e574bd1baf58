package model

import "time"

// Task is one row of the remote "tasks" table.
type Task struct {
	ID          int64     // Server-assigned identifier
	Title       string
	Description string    // The only field mutated after creation
	CreatedAt   time.Time // Server-assigned, immutable; display order key
	ImageURL    string    // Public URL of the attached image, empty when none
	UserID      string    // Owner id stamped from the session on insert
	Email       string    // Owner email stamped from the session on insert
}

// HasImage reports whether the task references an object-storage asset.
func (t Task) HasImage() bool {
	return t.ImageURL != ""
}

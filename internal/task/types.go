package task

import "io"

// InsertTaskInput is the input for creating a task.
// Owner fields come from model.Scope.
type InsertTaskInput struct {
	Title       string
	Description string
	ImageURL    string // Empty when no image is attached
}

// UpdateTaskInput carries the only mutable field of a task.
type UpdateTaskInput struct {
	ID          int64
	Description string
}

// UploadImageInput is a pending image file.
type UploadImageInput struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// Form is the state of the create-task form.
type Form struct {
	Title       string
	Description string
	Image       *UploadImageInput // Nil when no file is picked
}

// Reset clears every field after a successful submit.
func (f *Form) Reset() {
	f.Title = ""
	f.Description = ""
	f.Image = nil
}

func (f Form) HasImage() bool {
	return f.Image != nil && f.Image.Body != nil
}

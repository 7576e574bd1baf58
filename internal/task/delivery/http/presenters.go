package http

import (
	"mime/multipart"

	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task"
	"realtime-task-manager/pkg/response"
)

// --- Request DTOs ---

type listReq struct {
	Refresh bool `form:"refresh"`
}

type createReq struct {
	Title       string `form:"title"`
	Description string `form:"description"`

	image *multipart.FileHeader
}

func (r createReq) toForm(body multipartFile) task.Form {
	form := task.Form{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.image != nil && body != nil {
		form.Image = &task.UploadImageInput{
			FileName:    r.image.Filename,
			ContentType: r.image.Header.Get("Content-Type"),
			Body:        body,
		}
	}
	return form
}

type updateReq struct {
	ID          int64   `json:"-"` // populated from URI param
	Description *string `json:"description" binding:"required"` // nil when the field is missing
}

func (r updateReq) toInput() task.UpdateTaskInput {
	return task.UpdateTaskInput{
		ID:          r.ID,
		Description: *r.Description,
	}
}

// --- Response DTOs ---

type taskResp struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	CreatedAt   response.Timestamp `json:"created_at"`
	ImageURL    string             `json:"image_url,omitempty"`
	UserID      string             `json:"user_id,omitempty"`
	Email       string             `json:"email,omitempty"`
}

func newTaskResp(t model.Task) taskResp {
	return taskResp{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   response.Timestamp(t.CreatedAt),
		ImageURL:    t.ImageURL,
		UserID:      t.UserID,
		Email:       t.Email,
	}
}

type listResp struct {
	Tasks []taskResp `json:"tasks"`
	Count int        `json:"count"`
}

func (h *handler) newListResp(tasks []model.Task) listResp {
	items := make([]taskResp, len(tasks))
	for i, t := range tasks {
		items[i] = newTaskResp(t)
	}
	return listResp{
		Tasks: items,
		Count: len(items),
	}
}

type createResp struct {
	Task taskResp `json:"task"`
}

func (h *handler) newCreateResp(t model.Task) createResp {
	return createResp{Task: newTaskResp(t)}
}

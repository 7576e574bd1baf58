package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"realtime-task-manager/pkg/response"
)

// List godoc
// @Summary     List tasks
// @Description Returns the mirrored task list ordered by creation time. With refresh=true the table is re-read first.
// @Tags        Tasks
// @Produce     json
// @Param       refresh query bool false "Re-read the table before answering"
// @Success     200 {object} listResp
// @Failure     502 {object} response.Resp "Backend unavailable"
// @Router      /api/v1/tasks [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if req.Refresh {
		if _, err := h.uc.FetchTasks(ctx); err != nil {
			h.l.Errorf(ctx, "uc.FetchTasks: %v", err)
			h.abort(c, err)
			return
		}
	}

	response.OK(c, h.newListResp(h.uc.Tasks()))
}

// Create godoc
// @Summary     Create a task
// @Description Creates a task owned by the configured session. An optional image is uploaded first; a failed upload creates the task without image.
// @Tags        Tasks
// @Accept      multipart/form-data
// @Produce     json
// @Param       title       formData string false "Task title"
// @Param       description formData string false "Task description"
// @Param       image       formData file   false "Image attachment"
// @Success     200 {object} createResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Backend unavailable"
// @Router      /api/v1/tasks [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	body := h.openImage(ctx, req.image)
	if body != nil {
		defer body.Close()
	}

	form := req.toForm(body)
	created, err := h.uc.Submit(ctx, h.scope, &form)
	if err != nil {
		h.l.Errorf(ctx, "uc.Submit: %v", err)
		h.abort(c, err)
		return
	}

	response.OK(c, h.newCreateResp(created))
}

// Update godoc
// @Summary     Update a task description
// @Description Changes the description. The mirrored list follows once the change event arrives.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       id   path int       true "Task ID"
// @Param       body body updateReq true "New description"
// @Success     200 {object} response.Resp "OK"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Backend unavailable"
// @Router      /api/v1/tasks/{id} [PATCH]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpdateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.UpdateTask(ctx, req.toInput()); err != nil {
		h.l.Errorf(ctx, "uc.UpdateTask: %v", err)
		h.abort(c, err)
		return
	}

	response.OK(c, nil)
}

// Delete godoc
// @Summary     Delete a task
// @Description Removes a task. The mirrored list follows once the change event arrives.
// @Tags        Tasks
// @Produce     json
// @Param       id path int true "Task ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Backend unavailable"
// @Router      /api/v1/tasks/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := parseID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.DeleteTask(ctx, id); err != nil {
		h.l.Errorf(ctx, "uc.DeleteTask: %v", err)
		h.abort(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *handler) abort(c *gin.Context, err error) {
	herr := h.mapError(err)
	if herr.status == http.StatusInternalServerError {
		response.InternalError(c, err)
		return
	}
	response.ErrorWithStatus(c, herr.status, herr)
}

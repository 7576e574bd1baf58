package http

import (
	"io"

	"github.com/gin-gonic/gin"
)

const eventTasks = "tasks"

// Stream godoc
// @Summary     Stream the task list
// @Description Server-sent events. A "tasks" event carrying the full ordered list is sent on connect and after every change.
// @Tags        Tasks
// @Produce     text/event-stream
// @Success     200 {object} listResp
// @Router      /api/v1/tasks/stream [GET]
func (h *handler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	changes, cancel := h.uc.Watch()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent(eventTasks, h.newListResp(h.uc.Tasks()))
	c.Writer.Flush()

	h.l.Debugf(ctx, "http.Stream: client connected")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case _, ok := <-changes:
			if !ok {
				return false
			}
			c.SSEvent(eventTasks, h.newListResp(h.uc.Tasks()))
			return true
		}
	})
	h.l.Debugf(ctx, "http.Stream: client gone")
}

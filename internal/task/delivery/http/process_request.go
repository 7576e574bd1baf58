package http

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type multipartFile interface {
	io.Reader
	io.Closer
}

// processListReq binds the list query parameters.
func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processCreateReq binds the multipart create form. The image part is optional.
func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	if err := c.ShouldBind(&req); err != nil {
		return req, err
	}

	fh, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return req, nil
	case err != nil:
		return req, err
	}
	req.image = fh
	return req, nil
}

// openImage returns nil when the part cannot be read, so the task is
// created without image.
func (h *handler) openImage(ctx context.Context, fh *multipart.FileHeader) multipartFile {
	if fh == nil {
		return nil
	}
	f, err := fh.Open()
	if err != nil {
		h.l.Warnf(ctx, "http.Create open image %q: %v", fh.Filename, err)
		return nil
	}
	return f
}

// processUpdateReq binds the update body and the URI id.
func (h *handler) processUpdateReq(c *gin.Context) (updateReq, error) {
	var req updateReq
	id, err := parseID(c)
	if err != nil {
		return req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.ID = id
	return req, nil
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"realtime-task-manager/pkg/log"
)

const HeaderRequestID = "X-Request-ID"

// RequestID propagates the caller's request id, or assigns a new one, and
// stores it in the request context for the logger.
func (mw Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

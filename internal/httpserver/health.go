package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"realtime-task-manager/pkg/response"
)

const (
	ServiceName    = "realtime-task-manager"
	ServiceVersion = "1.0.0"
)

var errRouteNotFound = errors.New("route not found")

type healthResp struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Uptime      string `json:"uptime"`
	Tasks       *int   `json:"tasks,omitempty"`
}

func (srv HTTPServer) newHealthResp(status string) healthResp {
	return healthResp{
		Status:      status,
		Service:     ServiceName,
		Version:     ServiceVersion,
		Environment: srv.environment,
		Uptime:      time.Since(srv.startedAt).Truncate(time.Second).String(),
	}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, srv.newHealthResp("healthy"))
}

// readyCheck also reports the size of the mirrored list.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	resp := srv.newHealthResp("ready")
	n := len(srv.taskUC.Tasks())
	resp.Tasks = &n
	response.OK(c, resp)
}

// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, srv.newHealthResp("alive"))
}

func (srv HTTPServer) noRoute(c *gin.Context) {
	response.NotFound(c, errRouteNotFound)
}

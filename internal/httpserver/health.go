package httpserver

import (
	"github.com/gin-gonic/gin"

	"weekly-task-report/pkg/response"
)

const (
	HealthVersion = "1.0.0"
	ServiceName   = "weekly-task-report"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the service is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, response.Status{
		Status:      response.StatusHealthy,
		Version:     HealthVersion,
		Service:     ServiceName,
		Environment: srv.environment,
	})
}

// readyCheck reports whether the report worker queue accepts jobs.
// @Summary Readiness Check
// @Description Check if the service can take report commands
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is ready"
// @Failure 503 {object} map[string]interface{} "Workers not running"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	if srv.ready != nil && !srv.ready() {
		response.Unavailable(c, "workers not running")
		return
	}
	response.OK(c, response.Status{Status: response.StatusReady, Service: ServiceName})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, response.Status{Status: response.StatusAlive})
}

package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.GetHealth)
	router.GET("/health/ready", c.GetReadiness)
}

// GetHealth
// @Summary Liveness probe
// @Description Report that the process is up
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (c *HealthcheckController) GetHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReadiness
// @Summary Readiness probe
// @Description Check database and cache connectivity and report host resource usage
// @Tags system
// @Produce json
// @Success 200 {object} SystemStatusDTO
// @Failure 503 {object} map[string]string
// @Router /health/ready [get]
func (c *HealthcheckController) GetReadiness(ctx *gin.Context) {
	if err := c.healthcheckService.IsAvailable(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	status, err := c.healthcheckService.GetSystemStatus()
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, status)
}

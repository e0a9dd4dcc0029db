package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "ai-codify"
	version     = "1.0.0"
)

// Handler godoc
// @Summary Health check
// @Description Returns service status, the configured model provider and the live session count
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func Handler(provider string, sessions SessionCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:   "healthy",
			Service:  serviceName,
			Version:  version,
			Provider: provider,
			Sessions: sessions.GetSessionCount(),
		})
	}
}

// PingHandler godoc
// @Summary Ping
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /api/v1/ping [get]
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}

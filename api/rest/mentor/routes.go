package mentor

import "github.com/gin-gonic/gin"

// registers CodeMentor routes
func RegisterRoutes(router *gin.RouterGroup, runner Runner) {
	group := router.Group("/mentor")

	group.GET("/actions", ListActionsHandler)
	group.POST("/validate", ValidateHandler)
	group.POST("/:action", RunHandler(runner))
	group.POST("/:action/download", DownloadHandler(runner))
}

package ideas

import (
	"github.com/gin-gonic/gin"
	"github.com/umairazmat/Ai-Codify/internal/ideas"
	"github.com/umairazmat/Ai-Codify/internal/sessions"
)

// registers Idea Crafter routes
func RegisterRoutes(router *gin.RouterGroup, sessionMgr *sessions.Manager, generator ideas.Generator) {
	group := router.Group("/ideas")

	group.GET("", GetStateHandler(sessionMgr))
	group.POST("/topic", SubmitTopicHandler(sessionMgr))
	group.POST("/details", SubmitDetailsHandler(sessionMgr))
	group.POST("/generate", GenerateHandler(sessionMgr, generator))
	group.POST("/reset", ResetHandler(sessionMgr))
}

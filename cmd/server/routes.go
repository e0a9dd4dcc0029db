package main

import (
	"github.com/gin-gonic/gin"
	"github.com/umairazmat/Ai-Codify/api/rest/health"
	"github.com/umairazmat/Ai-Codify/api/rest/ideas"
	"github.com/umairazmat/Ai-Codify/api/rest/mentor"
	"github.com/umairazmat/Ai-Codify/internal/sessions"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.AllowedOrigins))
	router.GET("/health", health.Handler(server.config.LLMProvider, server.sessionMgr))

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		// only the wizard keeps per-browser state; mentor calls are stateless
		stateful := v1.Group("", sessions.Middleware(server.sessionMgr, sessions.CookieOptions{
			Secret: server.config.SessionSecret,
			MaxAge: int(server.config.SessionTTL.Seconds()),
			Secure: server.config.IsProduction(),
		}))

		ideas.RegisterRoutes(stateful, server.sessionMgr, server.services.Assistant)
		mentor.RegisterRoutes(v1, server.services.Assistant)
	}
}

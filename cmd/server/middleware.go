package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/umairazmat/Ai-Codify/internal/logger"
	"github.com/umairazmat/Ai-Codify/internal/sessions"
)

// allows the configured browser origins to call the API with cookies
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", sessions.HeaderName},
		ExposeHeaders:    []string{"Content-Disposition", sessions.HeaderName, "X-Result-Failed"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// logs one line per request through the structured logger
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// handlers pick this up through logger.FromContext
		reqLog := logger.With(
			"method", c.Request.Method,
			"path", c.FullPath(),
			"client_ip", c.ClientIP(),
		)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLog))

		c.Next()

		reqLog.Debug("request",
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"session_id", sessions.FromContext(c),
		)
	}
}

package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/umairazmat/Ai-Codify/internal/codeinput"
	"github.com/umairazmat/Ai-Codify/internal/config"
	"github.com/umairazmat/Ai-Codify/internal/sessions"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	services, err := InitializeServices(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	// uploads are capped well below this; the rest is form framing
	router.MaxMultipartMemory = 2 * codeinput.MaxUploadBytes

	server := &Server{
		config:     cfg,
		sessionMgr: sessions.NewManager(cfg.SessionTTL),
		services:   services,
		router:     router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

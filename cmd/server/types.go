package main

import (
	"github.com/gin-gonic/gin"
	"github.com/umairazmat/Ai-Codify/internal/assist"
	"github.com/umairazmat/Ai-Codify/internal/config"
	"github.com/umairazmat/Ai-Codify/internal/llm"
	"github.com/umairazmat/Ai-Codify/internal/sessions"
)

// holds all dependencies and state for the API server
type Server struct {
	config     *config.Config
	sessionMgr *sessions.Manager
	services   *Services
	router     *gin.Engine
}

// holds the model-facing clients
type Services struct {
	Generator llm.TextGenerator
	Assistant *assist.Assistant
}

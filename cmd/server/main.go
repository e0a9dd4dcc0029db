package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/umairazmat/Ai-Codify/internal/config"
	"github.com/umairazmat/Ai-Codify/internal/logger"
)

// @title Ai-Codify API
// @version 1.0
// @description Idea Crafter and CodeMentor backed by OpenAI-compatible or Anthropic models
// @description
// @description Features:
// @description - Three-step business idea wizard with one model call per result
// @description - Code review, refactoring, feedback, best practices and error removal
// @description - Plain-text downloads of every result
// @description - Cookie or X-Session-ID header sessions

// @contact.name API Support
// @contact.url https://github.com/umairazmat/Ai-Codify

// @host localhost:8080

func main() {
	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.FatalErr(err, "failed to load configuration")
	}

	logger.SetDefault(logger.New(cfg.Environment, os.Getenv("LOG_LEVEL"), nil))
	logger.Info("starting ai-codify server", "provider", cfg.LLMProvider, "environment", cfg.Environment)

	srv, err := NewServer(cfg)
	if err != nil {
		logger.FatalErr(err, "failed to create server")
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           srv.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// longer than the model client timeout so slow answers still reach the caller
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port, "model", srv.services.Generator.Model())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalErr(err, "server failed to start")
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.ErrorErr(err, "server forced to shutdown")
	}

	srv.sessionMgr.Stop()

	logger.Info("server stopped")
}

package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/umairazmat/Ai-Codify/internal/logger"
	"github.com/umairazmat/Ai-Codify/internal/tui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		_ = err // .env is optional
	}

	env := os.Getenv("AICODIFY_ENV")

	if env == "" {
		env = "development"
	}

	// log lines would tear the alt screen
	logger.SetDefault(logger.New(env, os.Getenv("LOG_LEVEL"), io.Discard))

	app := tui.NewApp(env, tui.NewClient(), os.Getenv("AICODIFY_DOWNLOAD_DIR"))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running ai-codify: %v\n", err)
		os.Exit(1)
	}
}

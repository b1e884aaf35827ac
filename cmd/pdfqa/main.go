// Command pdfqa is a terminal client for a PDF question-answering backend.
package main

import (
	"fmt"
	"os"

	"github.com/pdfqa/tui/internal/api"
	"github.com/pdfqa/tui/internal/app"
	"github.com/pdfqa/tui/internal/config"
	"github.com/pdfqa/tui/internal/logger"
	"go.uber.org/zap"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfqa: logging disabled: %v\n", err)
		log = logger.Nop()
	}
	defer log.Sync()

	client := api.New(cfg.APIURL)
	log.Info("starting", zap.String("api_url", client.BaseURL()))

	m := app.New(app.Options{
		Backend: client,
		Logger:  log,
		BaseURL: client.BaseURL(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("tui exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "pdfqa: %v\n", err)
		os.Exit(1)
	}
}

// Command pdfqa-fakebackend serves an in-memory PDF Q&A backend for local
// development of the pdfqa client.
package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/pdfqa/tui/internal/config"
	"github.com/pdfqa/tui/internal/fakebackend"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	srv, err := fakebackend.New()
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer srv.Close()

	log.Info("listening", zap.String("addr", cfg.FakeAddr))
	if err := srv.Start(cfg.FakeAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("serve", zap.Error(err))
	}
}

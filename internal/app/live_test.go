package app

import (
	"fmt"
	"os"
	"testing"

	"github.com/pdfqa/tui/internal/api"

	tea "github.com/charmbracelet/bubbletea"
)

// TestLiveTUIFlow drives the model against a running backend: load the
// document list, open the first document and print each view.
// Skipped unless PDFQA_LIVE_URL points at one.
func TestLiveTUIFlow(t *testing.T) {
	url := os.Getenv("PDFQA_LIVE_URL")
	if url == "" {
		t.Skip("PDFQA_LIVE_URL not set")
	}

	client := api.New(url)
	m := New(Options{Backend: client, BaseURL: client.BaseURL()})
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m = drive(t, m, m.Init())
	fmt.Println("=== Documents ===")
	fmt.Println(m.View())

	if len(m.documents) == 0 {
		t.Log("backend has no documents; upload one to exercise history")
		return
	}

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drive(t, m, cmd)
	if m.selected == nil {
		t.Fatal("expected a selected document")
	}
	fmt.Printf("=== %s (%d questions) ===\n", m.selected.Filename, len(m.questions))
	fmt.Println(m.View())
}

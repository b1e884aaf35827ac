package api_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/pdfqa/tui/internal/api"
)

// TestLiveBackend lists documents and history from a running backend.
// Skipped unless PDFQA_LIVE_URL points at one.
func TestLiveBackend(t *testing.T) {
	url := os.Getenv("PDFQA_LIVE_URL")
	if url == "" {
		t.Skip("PDFQA_LIVE_URL not set")
	}

	client := api.New(url)
	ctx := context.Background()

	docs, err := client.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	fmt.Printf("Documents: %d\n", len(docs))

	if len(docs) == 0 {
		return
	}

	qs, err := client.ListQuestions(ctx, docs[0].ID)
	if err != nil {
		t.Fatalf("ListQuestions(%d): %v", docs[0].ID, err)
	}
	fmt.Printf("Questions for %q: %d\n", docs[0].Filename, len(qs))
	for _, q := range qs {
		fmt.Printf("  [%d] %s -> %s\n", q.ID, q.Question, q.Answer)
	}
}

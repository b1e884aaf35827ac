// Package ui holds the lipgloss styles and display formatting for the TUI.
package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// Timestamp layouts the backend is known to emit, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02",
}

// ParseTimestamp parses a backend timestamp. Naive timestamps are taken as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DocumentDate renders an upload date as a local calendar date, or the raw
// value if it cannot be parsed.
func DocumentDate(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return s
	}
	return t.Local().Format("2006-01-02")
}

// CharCount renders an extracted text length as "12k chars".
func CharCount(n int) string {
	return fmt.Sprintf("%dk chars", int(math.Round(float64(n)/1000)))
}

// FileSize renders a byte count such as "200 kB".
func FileSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

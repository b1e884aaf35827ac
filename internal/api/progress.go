package api

import (
	"io"
	"math"
)

// progressReader reports how much of a fixed-size body has been read.
type progressReader struct {
	r     io.Reader
	total int64
	sent  int64
	last  int
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.sent += int64(n)
	if pct := Percent(p.sent, p.total); pct != p.last {
		p.last = pct
		p.fn(pct)
	}
	return n, err
}

// Percent returns sent as a rounded percentage of total. An empty total counts
// as complete.
func Percent(sent, total int64) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(sent) * 100 / float64(total)))
}

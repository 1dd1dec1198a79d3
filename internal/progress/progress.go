// Package progress renders a terminal progress bar for long-running
// sieve runs, adapted from the segment-progress bar used by the
// standalone prime generator this tool grew out of.
package progress

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Bar is a terminal progress bar that writes to stderr, driven by the
// sieve engine's (done, total) byte-progress callback.
type Bar struct {
	total       uint64
	completed   uint64
	width       int
	startTime   time.Time
	description string
	mu          sync.Mutex
}

// NewBar creates a bar over [0, total] bytes of sieving work.
func NewBar(total uint64, description string) *Bar {
	return &Bar{
		total:       total,
		width:       40,
		description: description,
		startTime:   time.Now(),
	}
}

// Set reports that `completed` out of the bar's total bytes are done.
func (b *Bar) Set(completed uint64) {
	b.mu.Lock()
	b.completed = completed
	b.render()
	b.mu.Unlock()
}

// Finish marks the bar as complete and moves to a fresh line.
func (b *Bar) Finish() {
	b.mu.Lock()
	b.completed = b.total
	b.render()
	fmt.Fprintln(os.Stderr)
	b.mu.Unlock()
}

func (b *Bar) render() {
	if b.total == 0 {
		return
	}

	percent := float64(b.completed) / float64(b.total)
	if percent > 1.0 {
		percent = 1.0
	}
	filled := int(percent * float64(b.width))

	elapsed := time.Since(b.startTime).Seconds()
	var rate float64
	if elapsed > 0 {
		rate = float64(b.completed) / elapsed
	}

	fmt.Fprintf(os.Stderr, "\r%s: [%s%s] %3.0f%% | %s/s",
		b.description,
		strings.Repeat("=", filled),
		strings.Repeat(" ", b.width-filled),
		percent*100,
		FormatNumber(rate))
}

// FormatNumber renders n with a K/M/B/T suffix for compact display.
func FormatNumber(n float64) string {
	switch {
	case n >= 1e12:
		return fmt.Sprintf("%.2fT", n/1e12)
	case n >= 1e9:
		return fmt.Sprintf("%.2fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.2fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.2fK", n/1e3)
	default:
		return fmt.Sprintf("%.0f", n)
	}
}

// Package progress renders the in-terminal export progress bar.
package progress

import (
	"fmt"
	"sync"
	"time"
)

// Bar is a simple single-line progress bar keyed to item counts.
type Bar struct {
	total     int
	current   int
	mu        sync.Mutex
	startTime time.Time
	lastPrint time.Time
	done      bool
}

// New creates a progress bar for total items.
func New(total int) *Bar {
	now := time.Now()
	return &Bar{
		total:     total,
		startTime: now,
		lastPrint: now,
	}
}

// Set moves the bar to an absolute position. Transcodes are slow, so every
// step redraws immediately rather than by interval alone.
func (b *Bar) Set(current int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = current
	b.render()
	b.lastPrint = time.Now()
}

// Increment advances the bar by one item.
func (b *Bar) Increment() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current++
	now := time.Now()
	if now.Sub(b.lastPrint) > 500*time.Millisecond || b.current >= b.total {
		b.render()
		b.lastPrint = now
	}
}

// Finish completes the bar and moves to a new line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.done {
		b.current = b.total
		b.render()
		fmt.Println()
		b.done = true
	}
}

func (b *Bar) render() {
	if b.done || b.total == 0 {
		return
	}

	percentage := float64(b.current) / float64(b.total) * 100
	elapsed := time.Since(b.startTime)

	var eta time.Duration
	if b.current > 0 {
		avg := elapsed / time.Duration(b.current)
		eta = avg * time.Duration(b.total-b.current)
	}

	const barWidth = 40
	filled := barWidth * b.current / b.total

	bar := ""
	for i := 0; i < barWidth; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}

	fmt.Printf("\r[%s] %d/%d (%.1f%%) - Elapsed: %s - ETA: %s   ",
		bar, b.current, b.total, percentage,
		formatDuration(elapsed), formatDuration(eta))
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

// Package progress renders a terminal spinner while files are stored or restored.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Tracker counts processed files and bytes. A Tracker built with a nil writer
// counts silently.
type Tracker struct {
	out       io.Writer
	total     int
	current   int
	bytes     uint64
	message   string
	mu        sync.Mutex
	startTime time.Time
	done      chan struct{}
	stopped   chan struct{}
	once      sync.Once
}

func New(out io.Writer, total int, message string) *Tracker {
	p := &Tracker{
		out:       out,
		total:     total,
		message:   message,
		startTime: time.Now(),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	if out == nil {
		close(p.stopped)
		return p
	}
	go p.render()
	return p
}

func (p *Tracker) render() {
	defer close(p.stopped)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-p.done:
			p.mu.Lock()
			fmt.Fprintf(p.out, "\r✓ %s (%d files, %s, %s)          \n",
				p.message, p.current, humanize.Bytes(p.bytes),
				time.Since(p.startTime).Round(time.Millisecond))
			p.mu.Unlock()
			return

		case <-ticker.C:
			p.mu.Lock()
			if p.total > 0 {
				percent := float64(p.current) / float64(p.total) * 100
				fmt.Fprintf(p.out, "\r%s %s [%d/%d] %.0f%%  ",
					spinner[frame%len(spinner)], p.message, p.current, p.total, percent)
			} else {
				fmt.Fprintf(p.out, "\r%s %s [%d files]  ",
					spinner[frame%len(spinner)], p.message, p.current)
			}
			p.mu.Unlock()
			frame++
		}
	}
}

// Add records one processed file of n bytes.
func (p *Tracker) Add(n int) {
	p.mu.Lock()
	p.current++
	if n > 0 {
		p.bytes += uint64(n)
	}
	p.mu.Unlock()
}

// Counts returns the processed file count and byte total.
func (p *Tracker) Counts() (files int, bytes uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.bytes
}

// Finish stops rendering and prints the summary line. Safe to call twice.
func (p *Tracker) Finish() {
	p.once.Do(func() { close(p.done) })
	<-p.stopped
}

package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ProgressBar draws completed operations against a known total on one
// terminal line. It is safe for concurrent use by workers.
type ProgressBar struct {
	w       io.Writer
	title   string
	total   int64
	current int64
	width   int
	shown   int // last rendered percent, -1 before the first render
	mu      sync.Mutex
}

// NewProgressBar creates a progress bar for total operations.
func NewProgressBar(w io.Writer, title string, total int64) *ProgressBar {
	return &ProgressBar{
		w:     w,
		title: title,
		total: total,
		width: 40,
		shown: -1,
	}
}

// Increment adds n completed operations. The bar is redrawn only when the
// whole percentage changes.
func (p *ProgressBar) Increment(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current += n
	if pct := p.percent(); pct != p.shown {
		p.render(pct)
	}
}

// Finish draws the final state and ends the line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.render(p.percent())
	fmt.Fprintln(p.w)
}

func (p *ProgressBar) percent() int {
	if p.total <= 0 {
		return 100
	}
	return int(min(p.current, p.total) * 100 / p.total)
}

func (p *ProgressBar) render(pct int) {
	p.shown = pct
	filled := p.width * pct / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)
	fmt.Fprintf(p.w, "\r%s [%s] %3d%% (%d/%d ops)", p.title, bar, pct, p.current, p.total)
}

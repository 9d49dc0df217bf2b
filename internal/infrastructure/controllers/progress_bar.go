package controllers

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

const progressBarSize = 20

// ProgressBar draws query progress on a single, rewritten terminal line.
// It stays silent when its output is not a terminal.
type ProgressBar struct {
	out     io.Writer
	enabled bool
	style   lipgloss.Style

	mu      sync.Mutex
	started bool
}

// NewProgressBar creates a progress bar on out, enabled only for terminals.
func NewProgressBar(out io.Writer) *ProgressBar {
	enabled := false
	if file, ok := out.(*os.File); ok {
		enabled = isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	}
	return newProgressBar(out, enabled)
}

func newProgressBar(out io.Writer, enabled bool) *ProgressBar {
	return &ProgressBar{
		out:     out,
		enabled: enabled,
		style:   lipgloss.NewRenderer(out).NewStyle().Foreground(colorCyan),
	}
}

// Update redraws the bar for done out of total finished queries.
func (b *ProgressBar) Update(done, total int) {
	if !b.enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	filled, percent := 0, 0
	if total > 0 {
		filled = progressBarSize * done / total
		percent = 100 * done / total //nolint:mnd // percentage
	}
	bar := strings.Repeat("=", filled) + strings.Repeat("-", progressBarSize-filled)
	fmt.Fprintf(b.out, "[%s] %d/%d %d%%\r", b.style.Render(bar), done, total, percent)
	b.started = true
}

// Close moves past the bar so following output starts on a fresh line.
func (b *ProgressBar) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		fmt.Fprintln(b.out)
		b.started = false
	}
}

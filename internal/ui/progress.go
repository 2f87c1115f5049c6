package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"tally/internal/domain"
	"tally/internal/theme"
)

// eraseLine moves the cursor up one line and clears it
const eraseLine = "\x1b[1A\x1b[2K"

// ProgressRenderer repaints one line per known source in place.
// It implements ports.ProgressDisplay.
type ProgressRenderer struct {
	bar    *progress.Model
	height int // lines printed by the previous frame
	mu     sync.Mutex
	out    io.Writer
	styled bool
}

// ProgressOption configures a ProgressRenderer
type ProgressOption func(*ProgressRenderer)

// WithStyles colors source URIs and phase labels
func WithStyles() ProgressOption {
	return func(r *ProgressRenderer) {
		r.styled = true
	}
}

// WithBar appends a progress bar of the given width to every started line.
// Bars are only drawn together with WithStyles.
func WithBar(width int) ProgressOption {
	return func(r *ProgressRenderer) {
		bar := progress.New(
			progress.WithGradient(theme.ColorBarStart, theme.ColorBarEnd),
			progress.WithWidth(width),
			progress.WithoutPercentage(),
		)
		r.bar = &bar
	}
}

// NewProgressRenderer creates a renderer writing frames to out
func NewProgressRenderer(out io.Writer, opts ...ProgressOption) *ProgressRenderer {
	r := &ProgressRenderer{out: out}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Draw erases the previous frame and prints the current one
func (r *ProgressRenderer) Draw(state *domain.ProgressState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draw(state)
}

// Finish prints the final frame and leaves it on screen
func (r *ProgressRenderer) Finish(state *domain.ProgressState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.draw(state)
	r.height = 0
	return err
}

func (r *ProgressRenderer) draw(state *domain.ProgressState) error {
	lines := r.frame(state)

	var b strings.Builder
	b.WriteString(strings.Repeat(eraseLine, r.height))
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return fmt.Errorf("failed to write progress frame: %w", err)
	}
	r.height = len(lines)
	return nil
}

// frame returns one line per known source, in classification order
func (r *ProgressRenderer) frame(state *domain.ProgressState) []string {
	uris := state.URIs()
	lines := make([]string, 0, len(uris))
	for _, uri := range uris {
		ev, ok := state.Get(uri)
		lines = append(lines, r.line(uri, ev, ok))
	}
	return lines
}

func (r *ProgressRenderer) line(uri string, ev domain.ProgressEvent, started bool) string {
	// Embedded newlines would break the fixed frame height
	uri = strings.NewReplacer("\n", " ", "\r", " ").Replace(uri)

	if !started {
		if r.styled {
			return theme.SourceStyle.Render(uri) + " => " + theme.WaitingStyle.Render("Waiting")
		}
		return uri + " => Waiting"
	}

	pct := ev.Percent()
	label := phaseLabel(ev.Phase, pct)
	if !r.styled {
		return fmt.Sprintf("%s => %s %d%%", uri, label, pct)
	}

	style := phaseStyle(ev.Phase)
	if pct == 100 {
		style = theme.CompletedStyle
	}
	line := theme.SourceStyle.Render(uri) + " => " + style.Render(label) + " " +
		theme.PercentStyle.Render(fmt.Sprintf("%d%%", pct))
	if r.bar != nil {
		line += " " + r.bar.ViewAs(float64(pct)/100)
	}
	return line
}

// phaseLabel names a phase, switching to its completed variant at 100%
func phaseLabel(phase domain.Phase, pct int) string {
	done := pct == 100
	switch phase {
	case domain.PhaseDeltaResolve:
		if done {
			return "Resolving Deltas Completed"
		}
		return "Resolving Deltas"
	case domain.PhaseCheckout:
		if done {
			return "Check Out Completed"
		}
		return "Checking Out"
	default:
		if done {
			return "Fetch Completed"
		}
		return "Fetching"
	}
}

func phaseStyle(phase domain.Phase) lipgloss.Style {
	switch phase {
	case domain.PhaseDeltaResolve:
		return theme.DeltasStyle
	case domain.PhaseCheckout:
		return theme.CheckoutStyle
	default:
		return theme.FetchStyle
	}
}

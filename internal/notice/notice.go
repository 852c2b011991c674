package notice

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a6e3a1"))
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f9e2af"))
	prefixStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7")).
			Bold(true)
)

// Terminal prints notices to a writer, usually stderr.
type Terminal struct {
	w     io.Writer
	quiet bool
}

// NewTerminal returns a notifier writing to w. A quiet notifier drops info
// notices and keeps warnings.
func NewTerminal(w io.Writer, quiet bool) *Terminal {
	return &Terminal{w: w, quiet: quiet}
}

func (t *Terminal) Info(msg string) {
	if t.quiet {
		return
	}
	t.print(infoStyle, msg)
}

func (t *Terminal) Warn(msg string) {
	t.print(warnStyle, msg)
}

func (t *Terminal) print(style lipgloss.Style, msg string) {
	fmt.Fprintf(t.w, "%s %s\n", prefixStyle.Render("linkext"), style.Render(msg))
}

// Recorder keeps notices in memory.
type Recorder struct {
	Infos []string
	Warns []string
}

func (r *Recorder) Info(msg string) { r.Infos = append(r.Infos, msg) }
func (r *Recorder) Warn(msg string) { r.Warns = append(r.Warns, msg) }

// All returns every notice in the order kinds were recorded: infos, then
// warnings.
func (r *Recorder) All() []string {
	return append(append([]string(nil), r.Infos...), r.Warns...)
}

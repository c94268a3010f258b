package ui

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/berlinclock/internal/clock"
	"github.com/javiermolinar/berlinclock/internal/config"
)

// Color definitions for lamps and secondary text.
var (
	colorRed    = color.New(color.FgRed, color.Bold)
	colorYellow = color.New(color.FgYellow, color.Bold)
	colorOff    = color.New(color.FgWhite, color.Faint)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the configured color mode for w.
func (a *App) useColor(w io.Writer, noColor bool) bool {
	if noColor {
		return false
	}
	switch a.config.Output.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal(w)
	}
}

func setColor(enabled bool) {
	if enabled {
		EnableColor()
	} else {
		DisableColor()
	}
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output.
func EnableColor() {
	color.NoColor = false
}

// formatLamp formats a single lamp code in its color.
func formatLamp(c clock.Color) string {
	switch c {
	case clock.Red:
		return colorRed.Sprint(c.String())
	case clock.Yellow:
		return colorYellow.Sprint(c.String())
	default:
		return colorOff.Sprint(c.String())
	}
}

// RenderColor renders the display like Display.String with colored lamps.
func RenderColor(d clock.Display) string {
	rows := d.Rows()
	lines := make([]string, len(rows))
	for i, r := range rows {
		var b strings.Builder
		for _, c := range r {
			b.WriteString(formatLamp(c))
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/kytekode/basm/internal/types"
)

// ColorError is the color of the error prefix.
var ColorError = lipgloss.Color("#EF4444")

// Printer writes diagnostics as "Error(line N): message".
type Printer struct {
	w     io.Writer
	color bool
	style lipgloss.Style
}

// NewPrinter returns a Printer writing to w. With color off the prefix is
// plain text. The color profile is detected on w itself, so a redirected
// stream gets no escape codes.
func NewPrinter(w io.Writer, color bool) *Printer {
	style := lipgloss.NewRenderer(w).NewStyle().
		Foreground(ColorError).
		Bold(true)
	return &Printer{w: w, color: color, style: style}
}

func (p *Printer) prefix() string {
	if p.color {
		return p.style.Render("Error")
	}
	return "Error"
}

// Diagnostics prints every diagnostic in order.
func (p *Printer) Diagnostics(diags []types.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(p.w, "%s%s\n", p.prefix(), d)
	}
}

// Errorf prints a message that is not tied to a source line.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintf(p.w, "%s: %s\n", p.prefix(), fmt.Sprintf(format, args...))
}

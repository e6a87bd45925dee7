// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/knit/internal/ui/output"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
)

// Styles renders command output for one writer.
type Styles struct {
	// Name styles package names and specifiers.
	Name lipgloss.Style
	// Path styles file paths.
	Path lipgloss.Style
	// Muted styles secondary details.
	Muted lipgloss.Style
	// Success styles the leading check mark.
	Success lipgloss.Style
}

// NewStyles returns styles whose color profile matches w.
// Writers that are not terminals get plain text.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(output.ProfileFor(w)))
	return Styles{
		Name:    r.NewStyle().Foreground(Iris).Bold(true),
		Path:    r.NewStyle(),
		Muted:   r.NewStyle().Foreground(Slate),
		Success: r.NewStyle().Foreground(Green),
	}
}

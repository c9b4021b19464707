// Purpose: Render help/quickstart text, styled for terminals.
// Exports: UsageText, QuickstartText.
// Role: Documentation rendering for CLI output.
// Invariants: Plain output is the embedded markdown verbatim (minus trailing newline).
// Notes: Rendering failures fall back to plain text.
package timer

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/glamour"
)

//go:embed help.md
var helpTextRaw string

//go:embed quickstart.md
var quickstartTextRaw string

// UsageText returns the help text, rendered for a terminal if color is true.
func UsageText(color bool) string {
	return renderMarkdown(helpTextRaw, color)
}

// QuickstartText returns the quickstart guide, rendered for a terminal if color is true.
func QuickstartText(color bool) string {
	return renderMarkdown(quickstartTextRaw, color)
}

func renderMarkdown(text string, color bool) string {
	if color {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			if out, err := r.Render(text); err == nil {
				return strings.TrimSuffix(out, "\n")
			}
		}
	}
	return strings.TrimSuffix(text, "\n")
}

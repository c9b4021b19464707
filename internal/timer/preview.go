// Purpose: Render snapshots in a terminal so a block config can be tried without a bar.
// Exports: RunPreview, RenderSnapshot.
// Role: Developer aid; translates pango spans and bar colors into lipgloss styles.
// Invariants: Never runs side effects; simulated frames advance a private clock by 1s.
// Notes: Colors degrade to plain text when the writer is not a color terminal.
package timer

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSpanRegex = regexp.MustCompile(`<span color='(#[0-9A-Fa-f]{6})'>(.*?)</span>`)
	anySpanRegex   = regexp.MustCompile(`</?span[^>]*>`)
)

// RenderSnapshot styles snap's label and full text for renderer.
func RenderSnapshot(renderer *lipgloss.Renderer, snap Snapshot) string {
	base := renderer.NewStyle()
	if snap.Color != "" {
		base = base.Foreground(lipgloss.Color(snap.Color))
	}
	if snap.Background != "" {
		base = base.Background(lipgloss.Color(snap.Background))
	}

	var b strings.Builder
	text := snap.FullText
	for {
		loc := colorSpanRegex.FindStringSubmatchIndex(text)
		if loc == nil {
			break
		}
		b.WriteString(base.Render(plainText(text[:loc[0]])))
		colored := base.Foreground(lipgloss.Color(text[loc[2]:loc[3]]))
		b.WriteString(colored.Render(plainText(text[loc[4]:loc[5]])))
		text = text[loc[1]:]
	}
	b.WriteString(base.Render(plainText(text)))

	return snap.Label + " " + b.String()
}

func plainText(text string) string {
	return html.UnescapeString(anySpanRegex.ReplaceAllString(text, ""))
}

// RunPreview prints frames snapshots, one simulated second apart.
func RunPreview(opts GlobalOptions, env Env, frames int) error {
	state := loadState(opts, env)
	state, _ = Split(Reduce(state))
	renderer := lipgloss.NewRenderer(env.Out)

	for i := 0; i < max(frames, 1); i++ {
		var snap Snapshot
		state, snap = SnapshotOrError(state, state.NewTimestamp)
		if _, err := fmt.Fprintln(env.Out, RenderSnapshot(renderer, snap)); err != nil {
			return err
		}
		state.NewTimestamp++
		state, _ = Split(TickPipeline.Apply(state))
	}
	return nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color modes accepted by the --color flag.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorEnabled resolves a color mode for output written to w. In auto
// mode color is enabled when w is a color-capable terminal; NO_COLOR
// and CLICOLOR_FORCE are honored.
func ColorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		return termenv.NewOutput(w).EnvColorProfile() != termenv.Ascii, nil
	default:
		return false, fmt.Errorf("render: unknown color mode %q (want %s, %s or %s)", mode, ColorAuto, ColorAlways, ColorNever)
	}
}

// Renderer formats documents for display.
type Renderer struct {
	color bool

	added   lipgloss.Style
	removed lipgloss.Style
	marker  lipgloss.Style
}

// New returns a Renderer. With color false every method returns plain
// text. With color true, styles are always emitted as ANSI256 escapes.
func New(color bool) *Renderer {
	styles := lipgloss.NewRenderer(io.Discard)
	if color {
		styles.SetColorProfile(termenv.ANSI256)
	}
	return &Renderer{
		color:   color,
		added:   styles.NewStyle().Foreground(lipgloss.Color("2")),
		removed: styles.NewStyle().Foreground(lipgloss.Color("1")),
		marker:  styles.NewStyle().Foreground(lipgloss.Color("6")).Faint(true),
	}
}

// XML returns document with ANSI syntax highlighting. Without color, or
// if highlighting fails, document is returned unchanged.
func (r *Renderer) XML(document string) string {
	if !r.color {
		return document
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, document, "xml", "terminal256", "monokai"); err != nil {
		return document
	}
	return buffer.String()
}

// Diff returns a line diff from before to after. Added lines start with
// "+", removed lines with "-", context lines with a space, and each
// hunk begins with an "@@ -a,b +c,d @@" marker. Identical inputs
// produce "".
func (r *Renderer) Diff(before, after string) string {
	hunks := Hunks(DiffLines(splitLines(before), splitLines(after)), defaultContext)
	if len(hunks) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, hunk := range hunks {
		builder.WriteString(r.style(r.marker, hunk.Header()))
		builder.WriteByte('\n')
		for _, line := range hunk.Lines {
			switch line.Op {
			case Insert:
				builder.WriteString(r.style(r.added, "+"+line.Text))
			case Delete:
				builder.WriteString(r.style(r.removed, "-"+line.Text))
			default:
				builder.WriteString(" " + line.Text)
			}
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

func (r *Renderer) style(style lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return style.Render(text)
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

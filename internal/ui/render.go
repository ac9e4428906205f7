package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"

	"github.com/metcalfc/lrn/internal/reader"
	"github.com/metcalfc/lrn/internal/variant"
)

// markdown renders section bodies with glamour, rebuilding the renderer only
// when the wrap width changes. Render errors fall back to the raw source.
type markdown struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

func newMarkdown(style string) *markdown {
	return &markdown{style: style}
}

func (md *markdown) render(src string, width int) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if md.renderer == nil || md.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(md.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return src
		}
		md.renderer, md.width = r, width
	}
	out, err := md.renderer.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}

// sectionMarkdown is the copy-to-clipboard form of a section, using the
// variant's labels for the list headings.
func sectionMarkdown(s reader.Section, v variant.Variant) string {
	var sb strings.Builder
	sb.WriteString("# " + s.Title + "\n")
	if c := strings.TrimSpace(s.Content); c != "" {
		sb.WriteString("\n" + c + "\n")
	}
	writeList := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("\n## " + label + "\n\n")
		for _, item := range items {
			sb.WriteString("- " + item + "\n")
		}
	}
	writeList(v.KeyPointsLabel, s.KeyPoints)
	writeList(v.ExamplesLabel, s.Examples)
	return sb.String()
}

// truncate shortens s to max cells, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return runewidth.Truncate(s, max-1, "") + "…"
}

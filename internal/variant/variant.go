// Package variant describes the two presentation modes of the reader.
//
// Both modes drive the same navigation core; a Variant only carries the
// labels, icon and colors a renderer needs to draw a section.
package variant

import (
	"fmt"
	"strings"
)

// Mode selects a presentation variant.
type Mode string

const (
	Comprehensive Mode = "comprehensive"
	Beginner      Mode = "beginner"
)

// Modes returns the selectable modes in display order.
func Modes() []Mode {
	return []Mode{Comprehensive, Beginner}
}

// ParseMode accepts a mode name, case-insensitively. The short aliases
// "full" and "paper" map to Comprehensive, "simple" and "lite" to Beginner.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "comprehensive", "full", "paper":
		return Comprehensive, nil
	case "beginner", "simple", "lite":
		return Beginner, nil
	}
	return "", fmt.Errorf("unknown mode %q (want comprehensive or beginner)", s)
}

func (m Mode) String() string { return string(m) }

// Theme holds hex colors for one variant.
type Theme struct {
	Accent      string // headings, current indicator dot, progress
	AccentMuted string // secondary text in the accent hue
	Panel       string // example panel background
	PanelText   string // example panel text
	Bullet      string // key point bullets
	DotIdle     string // indicator dots for other sections
}

// Variant is the configuration of one Reader Presentation.
type Variant struct {
	Mode        Mode
	Name        string
	Description string
	Highlights  []string

	Icon              string
	KeyPointsLabel    string
	ExamplesLabel     string
	ShowExamplesLabel string
	HideExamplesLabel string
	BackLabel         string
	PrevLabel         string
	NextLabel         string

	Theme Theme
}

// ExamplesToggleLabel returns the label for the examples control given
// whether the panel is currently open.
func (v Variant) ExamplesToggleLabel(open bool) string {
	if open {
		return v.HideExamplesLabel
	}
	return v.ShowExamplesLabel
}

var variants = map[Mode]Variant{
	Comprehensive: {
		Mode:        Comprehensive,
		Name:        "Comprehensive",
		Description: "In-depth study of the theory, for learners with some background",
		Highlights: []string{
			"Complete theoretical framework",
			"Detailed concept analysis",
			"Interactive learning components",
			"Knowledge map overview",
		},
		Icon:              "📖",
		KeyPointsLabel:    "Key points",
		ExamplesLabel:     "Case studies",
		ShowExamplesLabel: "Show case studies",
		HideExamplesLabel: "Hide case studies",
		BackLabel:         "Back to selection",
		PrevLabel:         "Previous",
		NextLabel:         "Next",
		Theme: Theme{
			Accent:      "#2563EB",
			AccentMuted: "#6366F1",
			Panel:       "#F0FDF4",
			PanelText:   "#15803D",
			Bullet:      "#3B82F6",
			DotIdle:     "#D1D5DB",
		},
	},
	Beginner: {
		Mode:        Beginner,
		Name:        "Beginner",
		Description: "Everyday examples that make the core ideas quick to grasp",
		Highlights: []string{
			"Everyday life examples",
			"Simplified structure",
			"Quick start",
			"Practical focus",
		},
		Icon:              "💚",
		KeyPointsLabel:    "Core concepts",
		ExamplesLabel:     "Everyday examples",
		ShowExamplesLabel: "Show everyday examples",
		HideExamplesLabel: "Hide everyday examples",
		BackLabel:         "Back to selection",
		PrevLabel:         "Previous",
		NextLabel:         "Next",
		Theme: Theme{
			Accent:      "#16A34A",
			AccentMuted: "#10B981",
			Panel:       "#EFF6FF",
			PanelText:   "#1D4ED8",
			Bullet:      "#22C55E",
			DotIdle:     "#D1D5DB",
		},
	},
}

// ForMode returns the Variant for m. Unknown modes fall back to Comprehensive.
func ForMode(m Mode) Variant {
	if v, ok := variants[m]; ok {
		v.Highlights = append([]string(nil), v.Highlights...)
		return v
	}
	return ForMode(Comprehensive)
}

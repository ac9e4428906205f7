package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/metcalfc/lrn/internal/variant"
)

// SelectOptions configures the mode selector.
type SelectOptions struct {
	// Course is shown in the selector title.
	Course string
	// Initial is the option highlighted first. Empty means Comprehensive.
	Initial variant.Mode
	// Accessible forces huh's line-based prompt. It is turned on
	// automatically when stdin is not a terminal.
	Accessible bool
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// modeOptions lists exactly one option per mode, labelled from its Variant.
func modeOptions() []huh.Option[variant.Mode] {
	modes := variant.Modes()
	opts := make([]huh.Option[variant.Mode], 0, len(modes))
	for _, m := range modes {
		v := variant.ForMode(m)
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s  %s · %s", v.Icon, v.Name, v.Description), m))
	}
	return opts
}

func highlights(m variant.Mode) string {
	v := variant.ForMode(m)
	lines := make([]string, len(v.Highlights))
	for i, h := range v.Highlights {
		lines[i] = "• " + h
	}
	return strings.Join(lines, "\n")
}

// SelectMode asks which presentation to open. It returns huh.ErrUserAborted
// when the user backs out.
func SelectMode(ctx context.Context, opts SelectOptions) (variant.Mode, error) {
	mode := opts.Initial
	if mode == "" {
		mode = variant.Comprehensive
	}

	title := "Choose how to learn"
	if opts.Course != "" {
		title = opts.Course + ": choose how to learn"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[variant.Mode]().
				Title(title).
				DescriptionFunc(func() string { return highlights(mode) }, &mode).
				Options(modeOptions()...).
				Value(&mode),
		),
	).WithTheme(huh.ThemeDracula())
	if opts.Accessible || !isTerminal() {
		form = form.WithAccessible(true)
	}

	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return mode, nil
}

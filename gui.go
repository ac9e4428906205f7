//go:build gui

package main

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/metcalfc/lrn/internal/reader"
	"github.com/metcalfc/lrn/internal/variant"
	"github.com/metcalfc/lrn/internal/watch"
)

// guiReader is the desktop presentation. It owns one reader.Reader at a time
// and rebuilds it on every mount, exactly like the terminal model.
type guiReader struct {
	a      app
	win    fyne.Window
	course *reader.Course

	v       variant.Variant
	nav     *reader.Reader
	mounted bool
	shown   int

	progress    *widget.Label
	title       *canvas.Text
	body        *widget.RichText
	kpLabel     *canvas.Text
	keyPoints   *widget.RichText
	examplesBtn *widget.Button
	examples    *widget.RichText
	panel       *fyne.Container
	prev        *widget.Button
	next        *widget.Button
	dots        *fyne.Container
	scroll      *container.Scroll
}

// present runs the desktop reader.
func present(ctx context.Context, a app) error {
	fa := fyneapp.NewWithID("io.github.metcalfc.lrn")
	g := &guiReader{
		a:      a,
		win:    fa.NewWindow("lrn - " + a.course.Title),
		course: a.course,
	}

	if a.mode != "" {
		g.mount(a.mode)
	} else {
		g.showSelector()
	}

	if a.watch {
		w, err := watch.New(a.source, watch.WithLogger(a.logger))
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
		go func() {
			for range w.Changes() {
				fyne.Do(g.reload)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		fyne.Do(fa.Quit)
	}()

	g.win.Resize(fyne.NewSize(900, 700))
	g.win.ShowAndRun()
	return nil
}

// showSelector offers exactly one card per mode. Any mounted reader is
// dropped.
func (g *guiReader) showSelector() {
	g.mounted = false
	g.nav = nil

	var cards []fyne.CanvasObject
	for _, m := range variant.Modes() {
		mode := m
		v := variant.ForMode(mode)
		items := make([]fyne.CanvasObject, 0, len(v.Highlights)+1)
		for _, h := range v.Highlights {
			items = append(items, widget.NewLabel("• "+h))
		}
		start := widget.NewButton("Start", func() { g.mount(mode) })
		start.Importance = widget.HighImportance
		items = append(items, start)

		accent := canvas.NewRectangle(hexColor(v.Theme.Accent))
		accent.SetMinSize(fyne.NewSize(0, 4))
		card := widget.NewCard(v.Icon+" "+v.Name, v.Description, container.NewVBox(items...))
		cards = append(cards, container.NewBorder(accent, nil, nil, nil, card))
	}

	heading := widget.NewLabelWithStyle(g.course.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	sub := widget.NewLabelWithStyle("Choose how to learn", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	g.win.SetContent(container.NewPadded(container.NewBorder(
		container.NewVBox(heading, sub), nil, nil, nil,
		container.NewGridWithColumns(2, cards...),
	)))
	g.win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.Key1:
			g.mount(variant.Comprehensive)
		case fyne.Key2:
			g.mount(variant.Beginner)
		case fyne.KeyQ:
			fyne.CurrentApp().Quit()
		}
	})
}

// mount starts a fresh session on the collection for mode.
func (g *guiReader) mount(mode variant.Mode) {
	g.v = variant.ForMode(mode)
	c := g.course.Collection(mode)
	g.nav = reader.NewReader(c)
	g.mounted = true
	g.shown = -1
	g.a.logger.Info("reader mounted", zap.Stringer("mode", mode), zap.Int("sections", c.Len()))

	accent := hexColor(g.v.Theme.Accent)

	back := widget.NewButton("← "+g.v.BackLabel, func() {
		g.a.logger.Debug("back to selection", zap.Stringer("mode", mode))
		g.showSelector()
	})
	back.Importance = widget.LowImportance
	g.progress = widget.NewLabel("")
	header := container.NewBorder(nil, nil, back, g.progress)

	g.title = canvas.NewText("", accent)
	g.title.TextSize = 24
	g.title.TextStyle = fyne.TextStyle{Bold: true}

	g.body = widget.NewRichText()
	g.body.Wrapping = fyne.TextWrapWord

	g.kpLabel = canvas.NewText(g.v.KeyPointsLabel, accent)
	g.kpLabel.TextStyle = fyne.TextStyle{Bold: true}
	g.keyPoints = widget.NewRichText()
	g.keyPoints.Wrapping = fyne.TextWrapWord

	g.examplesBtn = widget.NewButton("", func() {
		g.nav.ToggleDisclosure()
		g.a.logger.Debug("toggle examples", zap.Int("index", g.nav.Index()), zap.Bool("disclosed", g.nav.Disclosed()))
		g.render()
	})
	g.examples = widget.NewRichText()
	g.examples.Wrapping = fyne.TextWrapWord
	exLabel := canvas.NewText(g.v.ExamplesLabel, hexColor(g.v.Theme.PanelText))
	exLabel.TextStyle = fyne.TextStyle{Bold: true}
	g.panel = container.NewStack(
		canvas.NewRectangle(hexColor(g.v.Theme.Panel)),
		container.NewPadded(container.NewVBox(exLabel, g.examples)),
	)

	g.prev = widget.NewButton("‹ "+g.v.PrevLabel, func() {
		g.nav.Previous()
		g.render()
	})
	g.next = widget.NewButton(g.v.NextLabel+" ›", func() {
		g.nav.Next()
		g.render()
	})
	g.dots = container.NewHBox()
	footer := container.NewBorder(nil, nil, g.prev, g.next, container.NewCenter(g.dots))

	g.scroll = container.NewVScroll(container.NewVBox(
		g.title, g.body, g.kpLabel, g.keyPoints, g.examplesBtn, g.panel,
	))

	g.win.SetContent(container.NewPadded(container.NewBorder(header, footer, nil, nil, g.scroll)))
	g.win.Canvas().SetOnTypedKey(g.typedKey)
	g.render()
}

func (g *guiReader) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyRight, fyne.KeyL, fyne.KeyN:
		g.nav.Next()
	case fyne.KeyLeft, fyne.KeyH, fyne.KeyP:
		g.nav.Previous()
	case fyne.KeyHome, fyne.KeyG:
		g.jump(0)
	case fyne.KeyEnd:
		g.jump(g.nav.Len() - 1)
	case fyne.Key1, fyne.Key2, fyne.Key3, fyne.Key4, fyne.Key5, fyne.Key6, fyne.Key7, fyne.Key8, fyne.Key9:
		g.jump(int(ev.Name[0] - '1'))
	case fyne.KeySpace, fyne.KeyE:
		if g.nav.HasExamples() {
			g.nav.ToggleDisclosure()
		}
	case fyne.KeyEscape, fyne.KeyB:
		g.showSelector()
		return
	case fyne.KeyQ:
		fyne.CurrentApp().Quit()
		return
	default:
		return
	}
	g.render()
}

func (g *guiReader) jump(i int) {
	if err := g.nav.JumpTo(i); err != nil {
		g.a.logger.Debug("jump rejected", zap.Int("target", i), zap.Error(err))
	}
}

// render draws the current navigation state. Nothing here mutates it.
func (g *guiReader) render() {
	g.progress.SetText(g.nav.ProgressLabel())

	s, ok := g.nav.Current()
	if !ok {
		g.title.Text = g.v.Icon + " " + g.course.Title
		g.title.Refresh()
		g.body.ParseMarkdown("*This course has no sections to read.*")
		g.kpLabel.Hide()
		g.keyPoints.Hide()
		g.examplesBtn.Hide()
		g.panel.Hide()
		g.prev.Disable()
		g.next.Disable()
		g.dots.Objects = nil
		g.dots.Refresh()
		return
	}

	g.title.Text = g.v.Icon + " " + s.Title
	g.title.Refresh()
	g.body.ParseMarkdown(s.Content)

	if len(s.KeyPoints) > 0 {
		g.keyPoints.ParseMarkdown(markdownList(s.KeyPoints))
		g.kpLabel.Show()
		g.keyPoints.Show()
	} else {
		g.kpLabel.Hide()
		g.keyPoints.Hide()
	}

	if s.HasExamples() {
		g.examplesBtn.SetText(g.v.ExamplesToggleLabel(g.nav.Disclosed()))
		g.examplesBtn.Show()
		if g.nav.Disclosed() {
			g.examples.ParseMarkdown(markdownList(s.Examples))
			g.panel.Show()
		} else {
			g.panel.Hide()
		}
	} else {
		g.examplesBtn.Hide()
		g.panel.Hide()
	}

	if g.nav.IsFirst() {
		g.prev.Disable()
	} else {
		g.prev.Enable()
	}
	if g.nav.IsLast() {
		g.next.Disable()
	} else {
		g.next.Enable()
	}

	dots := g.nav.Indicator()
	objs := make([]fyne.CanvasObject, len(dots))
	for i, d := range dots {
		idx := d.Index
		btn := widget.NewButton("○", func() {
			g.jump(idx)
			g.render()
		})
		btn.Importance = widget.LowImportance
		if d.Current {
			btn.SetText("●")
			btn.Importance = widget.HighImportance
		}
		objs[i] = btn
	}
	g.dots.Objects = objs
	g.dots.Refresh()

	if g.shown != g.nav.Index() {
		g.shown = g.nav.Index()
		g.scroll.ScrollToTop()
	}
}

// reload swaps in the course file's new content and remounts the current
// mode with a fresh reader.
func (g *guiReader) reload() {
	course, err := reader.Load(g.a.source)
	if err != nil {
		g.a.logger.Warn("reload failed", zap.String("file", g.a.source), zap.Error(err))
		return
	}
	g.course = course
	g.a.logger.Info("course reloaded", zap.String("file", g.a.source))
	if g.mounted {
		g.mount(g.v.Mode)
		return
	}
	g.showSelector()
}

func markdownList(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("- " + item + "\n")
	}
	return sb.String()
}

func hexColor(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.TrimPrefix(s, "#"), "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Gray{Y: 0x80}
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

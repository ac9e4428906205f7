// Package ui is the terminal presentation of the reader: a bubbletea model
// that renders the navigation state of one section collection, and the mode
// selector shown before it.
package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/metcalfc/lrn/internal/reader"
	"github.com/metcalfc/lrn/internal/variant"
)

// Outcome is how a reader session ended.
type Outcome int

const (
	// OutcomeQuit ends the program.
	OutcomeQuit Outcome = iota
	// OutcomeBack returns to the mode selector.
	OutcomeBack
	// OutcomeReload remounts the reader after the course file changed.
	OutcomeReload
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBack:
		return "back"
	case OutcomeReload:
		return "reload"
	default:
		return "quit"
	}
}

// headerHeight is the back/progress line plus the section title line.
const headerHeight = 2

var clipboardWrite = clipboard.WriteAll

type courseChangedMsg struct{}

// Model renders one Navigation State. Every intent is forwarded to the
// reader; the model never changes the index or the disclosure flag itself.
type Model struct {
	nav     *reader.Reader
	variant variant.Variant
	course  string

	styles styles
	keys   keyMap
	help   help.Model
	body   viewport.Model
	md     *markdown
	logger *zap.Logger

	changes <-chan struct{}

	cursor  int
	status  string
	outcome Outcome
	width   int
	height  int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for navigation events.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithChanges ends the session with OutcomeReload when ch receives.
func WithChanges(ch <-chan struct{}) Option {
	return func(m *Model) { m.changes = ch }
}

// WithMarkdownStyle selects the glamour style for section bodies.
func WithMarkdownStyle(style string) Option {
	return func(m *Model) { m.md = newMarkdown(style) }
}

// NewModel mounts a fresh reader over c, starting at the first section with
// the examples panel closed.
func NewModel(course string, c *reader.Collection, v variant.Variant, opts ...Option) Model {
	m := Model{
		nav:     reader.NewReader(c),
		variant: v,
		course:  course,
		styles:  newStyles(v.Theme),
		keys:    defaultKeyMap(),
		help:    help.New(),
		body:    viewport.New(80, 20),
		md:      newMarkdown(glamourstyles.NoTTYStyle),
		logger:  zap.NewNop(),
		width:   80,
		height:  24,
	}
	m.body.KeyMap = bodyKeyMap()
	for _, opt := range opts {
		opt(&m)
	}
	m.help.Width = m.width
	m.refresh()
	m.layout()
	return m
}

// State returns the navigation state being rendered.
func (m Model) State() reader.State { return m.nav.State() }

// Outcome reports why the session ended.
func (m Model) Outcome() Outcome { return m.outcome }

func (m Model) Init() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return waitForChange(m.changes)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return courseChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.refresh()
		m.layout()
		return m, nil

	case courseChangedMsg:
		m.logger.Info("course file changed, reloading")
		m.outcome = OutcomeReload
		return m, tea.Quit

	case tea.KeyMsg:
		m.status = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.outcome = OutcomeQuit
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.logger.Debug("back to selection", zap.Stringer("mode", m.variant.Mode))
			m.outcome = OutcomeBack
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Next):
			m.navigate("next", m.nav.Next)

		case key.Matches(msg, m.keys.Prev):
			m.navigate("previous", m.nav.Previous)

		case key.Matches(msg, m.keys.First):
			m.jump(0)

		case key.Matches(msg, m.keys.Last):
			m.jump(m.nav.Len() - 1)

		case key.Matches(msg, m.keys.Jump):
			m.jump(int(msg.String()[0] - '1'))

		case key.Matches(msg, m.keys.Cursor):
			m.moveCursor(1)

		case key.Matches(msg, m.keys.CursorUp):
			m.moveCursor(-1)

		case key.Matches(msg, m.keys.Select):
			m.jump(m.cursor)

		case key.Matches(msg, m.keys.Examples):
			m.nav.ToggleDisclosure()
			m.logger.Debug("toggle examples",
				zap.Int("index", m.nav.Index()),
				zap.Bool("disclosed", m.nav.Disclosed()))
			m.refresh()

		case key.Matches(msg, m.keys.Copy):
			m.copySection()

		default:
			m.layout()
			var cmd tea.Cmd
			m.body, cmd = m.body.Update(msg)
			return m, cmd
		}
		// The footer grows and shrinks with the status row and full help.
		m.layout()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) navigate(intent string, move func()) {
	from := m.nav.Index()
	move()
	m.logger.Debug("navigate",
		zap.String("intent", intent),
		zap.Int("from", from),
		zap.Int("to", m.nav.Index()))
	m.moved()
}

func (m *Model) jump(i int) {
	from := m.nav.Index()
	if err := m.nav.JumpTo(i); err != nil {
		m.logger.Debug("jump rejected", zap.Int("target", i), zap.Error(err))
		var oor *reader.OutOfRangeError
		if errors.As(err, &oor) && oor.Len == 0 {
			m.status = "No sections to jump to"
		} else {
			m.status = fmt.Sprintf("There is no section %d", i+1)
		}
		return
	}
	m.logger.Debug("navigate",
		zap.String("intent", "jump"),
		zap.Int("from", from),
		zap.Int("to", i))
	m.moved()
}

// moved re-syncs view state after the index changed.
func (m *Model) moved() {
	m.cursor = m.nav.Index()
	m.refresh()
	m.body.GotoTop()
}

func (m *Model) moveCursor(delta int) {
	n := m.nav.Len()
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
	d := m.nav.Indicator()[m.cursor]
	m.status = fmt.Sprintf("%d. %s (enter to open)", d.Index+1, d.Title)
}

func (m *Model) copySection() {
	s, ok := m.nav.Current()
	if !ok {
		return
	}
	if err := clipboardWrite(sectionMarkdown(s, m.variant)); err != nil {
		m.logger.Warn("clipboard copy failed", zap.Error(err))
		m.status = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.status = "Section copied to clipboard"
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// refresh rebuilds the scrollable body for the current section.
func (m *Model) refresh() {
	s, ok := m.nav.Current()
	m.keys.Examples.SetEnabled(ok && s.HasExamples())
	if !ok {
		m.body.SetContent("")
		return
	}

	width := m.contentWidth()
	var parts []string
	if body := m.md.render(s.Content, width); body != "" {
		parts = append(parts, body)
	}

	if len(s.KeyPoints) > 0 {
		parts = append(parts, m.styles.label.Render(m.variant.KeyPointsLabel))
		item := lipgloss.NewStyle().Width(width - 4)
		for _, kp := range s.KeyPoints {
			parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top,
				"  "+m.styles.bullet.Render(bullet)+" ",
				item.Render(kp)))
		}
	}

	if s.HasExamples() {
		marker := "▸ "
		if m.nav.Disclosed() {
			marker = "▾ "
		}
		parts = append(parts, m.styles.toggle.Render(marker+m.variant.ExamplesToggleLabel(m.nav.Disclosed())))
		if m.nav.Disclosed() {
			lines := []string{m.styles.panelHd.Render(m.variant.ExamplesLabel)}
			for _, ex := range s.Examples {
				lines = append(lines, bullet+" "+ex)
			}
			parts = append(parts, m.styles.panel.Width(width).Render(strings.Join(lines, "\n")))
		}
	}

	m.body.SetContent(strings.Join(parts, "\n"))
}

// layout sizes the body to what the header and footer leave free.
func (m *Model) layout() {
	m.body.Width = m.width
	h := m.height - headerHeight - lipgloss.Height(m.footerView())
	if h < 1 {
		h = 1
	}
	m.body.Height = h
}

func (m Model) View() string {
	if m.nav.Empty() {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.headerView(),
			m.styles.empty.Render("This course has no sections to read."),
			m.footerView(),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.body.View(),
		m.footerView(),
	)
}

func (m Model) headerView() string {
	back := m.styles.back.Render("← " + m.variant.BackLabel)
	progress := m.styles.progress.Render(m.nav.ProgressLabel())
	gap := m.width - lipgloss.Width(back) - lipgloss.Width(progress)
	if gap < 1 {
		gap = 1
	}
	top := back + strings.Repeat(" ", gap) + progress

	title := m.course
	if s, ok := m.nav.Current(); ok {
		title = s.Title
	}
	avail := m.width - runewidth.StringWidth(m.variant.Icon) - 3
	return top + "\n" + m.styles.title.Render(m.variant.Icon+" "+truncate(title, avail))
}

func (m Model) footerView() string {
	var rows []string
	if !m.nav.Empty() {
		rows = append(rows, m.navView())
	}
	if m.status != "" {
		rows = append(rows, m.styles.status.Render(m.status))
	}
	rows = append(rows, m.help.View(m.keys))
	return strings.Join(rows, "\n")
}

// navView is the previous control, the index indicator and the next control.
// Edge controls render faint when the core would not move.
func (m Model) navView() string {
	prev := m.styles.navOn.Render("‹ " + m.variant.PrevLabel)
	if m.nav.IsFirst() {
		prev = m.styles.navOff.Render("‹ " + m.variant.PrevLabel)
	}
	next := m.styles.navOn.Render(m.variant.NextLabel + " ›")
	if m.nav.IsLast() {
		next = m.styles.navOff.Render(m.variant.NextLabel + " ›")
	}

	avail := m.width - lipgloss.Width(prev) - lipgloss.Width(next) - 4
	row := prev + "  " + m.indicatorView(avail) + "  " + next
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, row)
}

func (m Model) indicatorView(avail int) string {
	dots := m.nav.Indicator()
	if len(dots)*2-1 > avail {
		return m.styles.dot.Render(dotCurrent) + " " + m.styles.progress.Render(m.nav.ProgressLabel())
	}
	glyphs := make([]string, len(dots))
	for i, d := range dots {
		style := m.styles.dotIdle
		glyph := dotIdle
		if d.Current {
			style = m.styles.dot
			glyph = dotCurrent
		}
		if d.Index == m.cursor && !d.Current {
			style = style.Inherit(m.styles.dotFocus)
		}
		glyphs[i] = style.Render(glyph)
	}
	return strings.Join(glyphs, " ")
}

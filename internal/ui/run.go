package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/metcalfc/lrn/internal/reader"
	"github.com/metcalfc/lrn/internal/variant"
	"github.com/metcalfc/lrn/internal/watch"
)

// Session is one run of the terminal reader.
type Session struct {
	Course *reader.Course
	// Source is the file Course was loaded from. Empty for the built-in course.
	Source string
	// Mode skips the selector on the first mount when set.
	Mode variant.Mode
	// Watch reloads Course when Source changes on disk.
	Watch  bool
	Logger *zap.Logger
}

// Run alternates between the mode selector and a reader until the user
// quits. Every mount starts a fresh navigation state: nothing survives a
// return to the selector or a reload.
func Run(ctx context.Context, s Session) error {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	course := s.Course
	if course == nil {
		course = &reader.Course{}
	}
	mode := s.Mode
	last := variant.Comprehensive

	// Query the background before the alt screen takes the terminal.
	style := glamourstyles.LightStyle
	if lipgloss.HasDarkBackground() {
		style = glamourstyles.DarkStyle
	}

	for {
		if mode == "" {
			selected, err := SelectMode(ctx, SelectOptions{Course: course.Title, Initial: last})
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			if err != nil {
				return err
			}
			mode = selected
		}
		last = mode

		outcome, err := mount(ctx, s, course, mode, style, logger)
		if err != nil {
			return err
		}

		switch outcome {
		case OutcomeBack:
			mode = ""
		case OutcomeReload:
			reloaded, err := reader.Load(s.Source)
			if err != nil {
				// Keep reading the previous version; the next save retries.
				logger.Warn("reload failed", zap.String("file", s.Source), zap.Error(err))
				continue
			}
			course = reloaded
			logger.Info("course reloaded", zap.String("file", s.Source))
		default:
			return nil
		}
	}
}

func mount(ctx context.Context, s Session, course *reader.Course, mode variant.Mode, style string, logger *zap.Logger) (Outcome, error) {
	c := course.Collection(mode)
	logger.Info("reader mounted",
		zap.Stringer("mode", mode),
		zap.Int("sections", c.Len()))

	opts := []Option{WithLogger(logger), WithMarkdownStyle(style)}
	if s.Watch && s.Source != "" {
		w, err := watch.New(s.Source, watch.WithLogger(logger))
		if err != nil {
			return OutcomeQuit, err
		}
		if err := w.Start(); err != nil {
			return OutcomeQuit, err
		}
		defer w.Stop()
		opts = append(opts, WithChanges(w.Changes()))
	}

	m := NewModel(course.Title, c, variant.ForMode(mode), opts...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return OutcomeQuit, nil
		}
		return OutcomeQuit, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Outcome(), nil
	}
	return OutcomeQuit, nil
}

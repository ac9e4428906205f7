//go:build !gui

package main

import (
	"context"

	"github.com/metcalfc/lrn/internal/ui"
)

// present runs the terminal reader.
func present(ctx context.Context, a app) error {
	return ui.Run(ctx, ui.Session{
		Course: a.course,
		Source: a.source,
		Mode:   a.mode,
		Watch:  a.watch,
		Logger: a.logger,
	})
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/carteira/internal/app"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
)

// env is shared by every command. Storage is opened on first use so that
// help output works without a database.
type env struct {
	out  io.Writer
	raw  bool
	now  func() time.Time
	open func() (*app.App, func() error, error)

	app     *app.App
	closeFn func() error
}

func (e *env) App() (*app.App, error) {
	if e.app != nil {
		return e.app, nil
	}

	a, closeFn, err := e.open()
	if err != nil {
		return nil, err
	}

	e.app, e.closeFn = a, closeFn

	return a, nil
}

func (e *env) close() {
	if e.closeFn == nil {
		return
	}

	if err := e.closeFn(); err != nil {
		slog.Error("closing storage", "error", err)
	}

	e.closeFn = nil
}

// printMarkdown renders md for the terminal, or writes it unchanged with
// -raw or when rendering fails.
func (e *env) printMarkdown(md string) {
	if e.raw {
		fmt.Fprint(e.out, md)
		return
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(e.out, out)
			return
		}
	}

	slog.Debug("markdown rendering failed", "error", err)
	fmt.Fprint(e.out, md)
}

func (e *env) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

// month parses a -month flag, defaulting to the current month.
func (e *env) month(s string) (metrics.Month, error) {
	if s == "" {
		return metrics.MonthOf(e.now()), nil
	}

	return metrics.ParseMonth(s)
}

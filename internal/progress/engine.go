// Package progress renders animated terminal progress indicators and drives
// them while a child shell command runs: an eased time estimate when the
// command reports nothing, or parsed output when it does.
package progress

import (
	"io"
	"sync"

	"github.com/devinegearing/cli-progress/internal/config"
	"github.com/devinegearing/cli-progress/internal/runner"
	"github.com/devinegearing/cli-progress/internal/style"
)

// Engine owns one terminal line plus the spinner frame index shared by
// every bar rendered through it. Independent engines never interfere; two
// engines writing the same stream are the caller's problem.
type Engine struct {
	out    io.Writer
	look   config.Appearance
	styles style.Styles
	exec   runner.Runner

	interactive bool

	mu         sync.Mutex
	frame      int
	lineActive bool
}

type Options struct {
	Appearance  config.Appearance
	Styles      style.Styles
	Interactive bool
	Runner      runner.Runner
}

// New builds an engine with default appearance, auto-detected styling, and
// in-place animation only when out is a terminal.
func New(out io.Writer) *Engine {
	return NewWithOptions(out, Options{
		Appearance:  config.DefaultAppearance(),
		Styles:      style.Detect(out),
		Interactive: style.IsTerminal(out),
		Runner:      runner.New(),
	})
}

func NewWithOptions(out io.Writer, opts Options) *Engine {
	if opts.Runner == nil {
		opts.Runner = runner.New()
	}
	return &Engine{
		out:         out,
		look:        config.Normalized(opts.Appearance),
		styles:      opts.Styles,
		exec:        opts.Runner,
		interactive: opts.Interactive,
	}
}

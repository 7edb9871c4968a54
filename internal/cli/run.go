package cli

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/devinegearing/cli-progress/internal/config"
	"github.com/devinegearing/cli-progress/internal/exitcode"
	"github.com/devinegearing/cli-progress/internal/progress"
	"github.com/devinegearing/cli-progress/internal/style"
	"github.com/spf13/cobra"
)

type runOptions struct {
	Label           string
	Estimate        time.Duration
	Total           int
	Match           string
	DoneLabel       string
	Dir             string
	TolerateFailure bool
}

func newRunCommand(app *AppContext) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run [flags] -- <command>...",
		Short: "Run a shell command behind an animated progress bar",
		Long: "Runs the command through the shell while animating a progress bar. " +
			"With --estimate the bar eases along the expected duration; otherwise it " +
			"tracks the command's own output via --total and/or --match.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrapped(cmd.Context(), app, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&opts.Label, "label", "l", "", "Label shown next to the bar (defaults to the command)")
	cmd.Flags().DurationVar(&opts.Estimate, "estimate", 0, "Expected duration; selects estimated mode")
	cmd.Flags().IntVar(&opts.Total, "total", 0, "Expected output line count; each line advances the bar")
	cmd.Flags().StringVar(&opts.Match, "match", "", "Regexp whose first capture group is a percentage in the output")
	cmd.Flags().StringVar(&opts.DoneLabel, "done-label", "", "Label printed on success")
	cmd.Flags().StringVar(&opts.Dir, "cwd", "", "Working directory for the command")
	cmd.Flags().BoolVar(&opts.TolerateFailure, "tolerate-failure", false, "Treat a non-zero exit as success")

	return cmd
}

func runWrapped(ctx context.Context, app *AppContext, opts runOptions, command string) error {
	if opts.Estimate > 0 && (opts.Total > 0 || opts.Match != "") {
		return withExitCode(exitcode.InvalidUsage, errors.New("--estimate cannot be combined with --total or --match"))
	}

	look, err := config.Load(config.LoadOptions{ExplicitPath: strings.TrimSpace(app.Opts.ConfigPath)})
	if err != nil {
		return withExitCode(exitcode.InvalidConfig, err)
	}

	dir, err := config.ExpandPath(opts.Dir)
	if err != nil {
		return withExitCode(exitcode.InvalidUsage, err)
	}

	styles := style.Detect(app.IO.Out)
	if app.Opts.NoColor {
		styles = style.Plain()
	}

	eng := progress.NewWithOptions(app.IO.Out, progress.Options{
		Appearance:  look,
		Styles:      styles,
		Interactive: !app.Opts.Quiet && style.IsTerminal(app.IO.Out),
	})

	label := strings.TrimSpace(opts.Label)
	if label == "" {
		label = command
	}

	var tolerate func() bool
	if opts.TolerateFailure {
		tolerate = func() bool { return true }
	}

	if opts.Estimate > 0 {
		return eng.RunEstimated(ctx, progress.EstimatedSpec{
			Label:           label,
			Command:         command,
			Dir:             dir,
			Estimated:       opts.Estimate,
			DoneLabel:       opts.DoneLabel,
			TolerateFailure: tolerate,
		})
	}

	spec := progress.TrackedSpec{
		Label:           label,
		Command:         command,
		Dir:             dir,
		Total:           opts.Total,
		DoneLabel:       opts.DoneLabel,
		TolerateFailure: tolerate,
	}

	if opts.Match != "" {
		pattern, err := regexp.Compile(opts.Match)
		if err != nil {
			return withExitCode(exitcode.InvalidUsage, fmt.Errorf("invalid --match pattern: %w", err))
		}
		spec.ParseProgress = percentParser(pattern)
	}
	if opts.Total > 0 {
		spec.OnOutput = lineCounter()
	}

	return eng.RunTracked(ctx, spec)
}

// percentParser turns a regexp with one capture group into a ParseProgress
// callback; the last match in a chunk wins.
func percentParser(pattern *regexp.Regexp) func(string) (float64, bool) {
	return func(chunk string) (float64, bool) {
		matches := pattern.FindAllStringSubmatch(chunk, -1)
		if len(matches) == 0 {
			return 0, false
		}
		last := matches[len(matches)-1]
		if len(last) < 2 {
			return 0, false
		}
		percent, err := strconv.ParseFloat(last[1], 64)
		if err != nil {
			return 0, false
		}
		return percent / 100, true
	}
}

// lineCounter advances the step counter once per completed output line.
func lineCounter() func(string, *progress.TrackedBar) {
	return func(chunk string, bar *progress.TrackedBar) {
		for i := 0; i < strings.Count(chunk, "\n"); i++ {
			bar.Increment()
		}
	}
}

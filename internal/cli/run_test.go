package cli

import (
	"bytes"
	"errors"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/devinegearing/cli-progress/internal/exitcode"
	"github.com/devinegearing/cli-progress/internal/progress"
)

func newTestApp(out, errOut *bytes.Buffer) *AppContext {
	return &AppContext{
		Build: BuildInfo{Version: "test"},
		IO:    IOStreams{In: strings.NewReader(""), Out: out, ErrOut: errOut},
	}
}

func TestPercentParserReadsCaptureGroup(t *testing.T) {
	parse := percentParser(regexp.MustCompile(`progress: ([0-9.]+)%`))

	ratio, ok := parse("progress: 42.5% of archive")
	if !ok || ratio != 0.425 {
		t.Fatalf("expected ratio 0.425, got %v (ok=%v)", ratio, ok)
	}

	if _, ok := parse("no progress here"); ok {
		t.Fatalf("expected no update for a non-matching chunk")
	}
}

func TestPercentParserLastMatchWins(t *testing.T) {
	parse := percentParser(regexp.MustCompile(`([0-9]+)%`))

	ratio, ok := parse("10%\n20%\n30%\n")
	if !ok || ratio != 0.3 {
		t.Fatalf("expected the last percentage in the chunk, got %v (ok=%v)", ratio, ok)
	}
}

func TestRunCommandRejectsEstimateWithTracking(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	app := newTestApp(out, errOut)

	root := newRootCommand(app)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs([]string{"run", "--estimate", "5s", "--total", "3", "--", "true"})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected an error combining --estimate with --total")
	}
	if got := mapExitCode(err); got != exitcode.InvalidUsage {
		t.Fatalf("expected invalid-usage code, got %d", got)
	}
}

func TestRunCommandWrapsSuccessfulShellCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell test is POSIX-specific")
	}

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	app := newTestApp(out, errOut)

	root := newRootCommand(app)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs([]string{"run", "--label", "quick job", "--done-label", "quick job done", "--", "true"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "✔ quick job done") {
		t.Fatalf("expected the success line, got %q", out.String())
	}
}

func TestRunCommandPropagatesChildFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell test is POSIX-specific")
	}

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	app := newTestApp(out, errOut)

	root := newRootCommand(app)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs([]string{"run", "--", "exit 5"})

	err := root.Execute()
	var cmdErr *progress.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if got := mapExitCode(err); got != 5 {
		t.Fatalf("expected the child exit code 5, got %d", got)
	}
	if !strings.Contains(out.String(), "✖") {
		t.Fatalf("expected the failure line, got %q", out.String())
	}
}

func TestRunCommandToleratesFailureWhenAsked(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell test is POSIX-specific")
	}

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	app := newTestApp(out, errOut)

	root := newRootCommand(app)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs([]string{"run", "--tolerate-failure", "--", "exit 5"})

	if err := root.Execute(); err != nil {
		t.Fatalf("expected tolerated failure to resolve, got %v", err)
	}
	if !strings.Contains(out.String(), "✔") {
		t.Fatalf("expected the success line, got %q", out.String())
	}
}

package cli

import (
	"errors"
	"testing"

	"github.com/devinegearing/cli-progress/internal/exitcode"
	"github.com/devinegearing/cli-progress/internal/progress"
)

func TestMapExitCodeNil(t *testing.T) {
	if got := mapExitCode(nil); got != exitcode.Success {
		t.Fatalf("expected success code for nil error, got %d", got)
	}
}

func TestMapExitCodeCodedError(t *testing.T) {
	err := withExitCode(exitcode.InvalidConfig, errors.New("bad config"))
	if got := mapExitCode(err); got != exitcode.InvalidConfig {
		t.Fatalf("expected invalid-config code, got %d", got)
	}
}

func TestMapExitCodePropagatesChildExitCode(t *testing.T) {
	err := &progress.CommandError{ExitCode: 42}
	if got := mapExitCode(err); got != 42 {
		t.Fatalf("expected the child's exit code, got %d", got)
	}
}

func TestMapExitCodeUsageErrors(t *testing.T) {
	if got := mapExitCode(errors.New(`unknown flag: --frobnicate`)); got != exitcode.InvalidUsage {
		t.Fatalf("expected invalid-usage code, got %d", got)
	}
}

func TestMapExitCodeFallsBackToRuntimeFailure(t *testing.T) {
	if got := mapExitCode(errors.New("something else")); got != exitcode.RuntimeFailure {
		t.Fatalf("expected runtime-failure code, got %d", got)
	}
}

func TestWithExitCodeNilPassthrough(t *testing.T) {
	if withExitCode(exitcode.InvalidUsage, nil) != nil {
		t.Fatalf("expected nil error to stay nil")
	}
}

package cli

import (
	"errors"
	"strings"

	"github.com/devinegearing/cli-progress/internal/exitcode"
	"github.com/devinegearing/cli-progress/internal/progress"
)

type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// mapExitCode translates a command error into the process exit code. A
// failed wrapped command exits with the child's own code.
func mapExitCode(err error) int {
	if err == nil {
		return exitcode.Success
	}
	var coded *ExitError
	if errors.As(err, &coded) {
		return coded.Code
	}
	var cmdErr *progress.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	message := err.Error()
	if strings.Contains(message, "unknown command") || strings.Contains(message, "unknown flag") {
		return exitcode.InvalidUsage
	}
	return exitcode.RuntimeFailure
}

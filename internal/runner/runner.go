package runner

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"
)

// Runner is the process-execution boundary: it runs one shell-interpreted
// command to completion and reports its exit.
type Runner interface {
	Run(ctx context.Context, spec Spec, onStdout, onStderr ChunkFunc) Result
}

type Spec struct {
	Command string
	Dir     string
}

type Result struct {
	ExitCode    int
	Duration    time.Duration
	Interrupted bool
	StderrTail  string
	Err         error
}

// ChunkFunc receives one output chunk (one pipe write) as it arrives.
type ChunkFunc func(chunk string)

type ShellRunner struct {
	Shell string
}

func New() *ShellRunner {
	return &ShellRunner{}
}

func (r *ShellRunner) shell() string {
	if strings.TrimSpace(r.Shell) != "" {
		return r.Shell
	}
	return "sh"
}

// Run executes the command through the shell with no stdin, streaming
// stdout and stderr chunks to the callbacks and keeping a bounded stderr
// tail for failure reporting.
func (r *ShellRunner) Run(ctx context.Context, spec Spec, onStdout, onStderr ChunkFunc) Result {
	start := time.Now()
	if strings.TrimSpace(spec.Command) == "" {
		return Result{ExitCode: 1, Duration: time.Since(start), Err: errors.New("missing command")}
	}

	cmd := exec.CommandContext(ctx, r.shell(), "-c", spec.Command)
	cmd.Dir = spec.Dir

	stderrTail := newTailBuffer(64 * 1024)
	cmd.Stdout = chunkWriter{fn: onStdout}
	cmd.Stderr = io.MultiWriter(chunkWriter{fn: onStderr}, stderrTail)

	err := cmd.Run()
	result := Result{
		Duration:   time.Since(start),
		StderrTail: stderrTail.String(),
		Err:        err,
	}
	if err == nil {
		result.ExitCode = 0
		return result
	}

	if ctx.Err() == context.Canceled {
		result.Interrupted = true
		result.ExitCode = 130
		return result
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result
	}

	if errors.Is(err, exec.ErrNotFound) {
		result.ExitCode = 127
		return result
	}

	result.ExitCode = 1
	return result
}

type chunkWriter struct {
	fn ChunkFunc
}

func (w chunkWriter) Write(p []byte) (int, error) {
	if w.fn != nil && len(p) > 0 {
		w.fn(string(p))
	}
	return len(p), nil
}

type tailBuffer struct {
	buf []byte
	max int
}

func newTailBuffer(max int) *tailBuffer {
	if max <= 0 {
		max = 64 * 1024
	}
	return &tailBuffer{
		buf: make([]byte, 0, max),
		max: max,
	}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) >= t.max {
		t.buf = append(t.buf[:0], p[len(p)-t.max:]...)
		return len(p), nil
	}
	overflow := len(t.buf) + len(p) - t.max
	if overflow > 0 {
		t.buf = append(t.buf[:0], t.buf[overflow:]...)
	}
	t.buf = append(t.buf, p...)
	return len(p), nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}

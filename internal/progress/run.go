package progress

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/devinegearing/cli-progress/internal/runner"
)

const (
	snapFrames   = 8
	snapInterval = 30 * time.Millisecond
)

// CommandError reports a wrapped command that exited non-zero and was not
// tolerated. It is terminal for the run; retrying is the caller's decision.
type CommandError struct {
	ExitCode int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed with exit code %d", e.ExitCode)
}

// EstimatedSpec configures a run whose bar is driven purely by wall-clock
// time against an expected duration; the child's output is ignored.
type EstimatedSpec struct {
	Label     string
	Command   string
	Dir       string
	Estimated time.Duration

	// DoneLabelFunc, when set, is resolved at success time and wins over
	// DoneLabel.
	DoneLabel     string
	DoneLabelFunc func() string

	// TolerateFailure is consulted at exit time; returning true turns a
	// non-zero exit into a success.
	TolerateFailure func() bool
}

// TrackedSpec configures a run whose bar is driven by the child's own
// output through ParseProgress and/or OnOutput.
type TrackedSpec struct {
	Label   string
	Command string
	Dir     string
	Total   int

	// ParseProgress inspects one output chunk and returns a ratio; ok=false
	// means no update. It runs before OnOutput on every chunk, and each
	// callback runs regardless of what the other did.
	ParseProgress func(chunk string) (ratio float64, ok bool)

	// OnOutput sees every chunk together with the bar view, so callers can
	// Increment or SetPercent themselves.
	OnOutput func(chunk string, bar *TrackedBar)

	DoneLabel       string
	DoneLabelFunc   func() string
	TolerateFailure func() bool
}

// RunEstimated animates the bar along the eased curve while the command
// runs. The child's exit, never the curve, ends the run; the sampler keeps
// easing toward the ceiling for as long as the command takes.
func (e *Engine) RunEstimated(ctx context.Context, spec EstimatedSpec) error {
	h := e.Start(spec.Label, 0)
	adjusted := time.Duration(float64(spec.Estimated) * (1 + e.look.EstimateBuffer))
	start := time.Now()

	samplerDone := make(chan struct{})
	samplerExit := make(chan struct{})
	go func() {
		defer close(samplerExit)
		ticker := time.NewTicker(samplingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-samplerDone:
				return
			case <-ticker.C:
				h.SetRatio(easedRatio(time.Since(start), adjusted))
			}
		}
	}()

	res := e.exec.Run(ctx, runner.Spec{Command: spec.Command, Dir: spec.Dir}, nil, nil)
	close(samplerDone)
	<-samplerExit

	return e.finish(h, spec.Label, res, spec.DoneLabel, spec.DoneLabelFunc, spec.TolerateFailure)
}

// RunTracked feeds every output chunk, stdout and stderr serialized in
// arrival order, through the configured callbacks while the bar animates.
func (e *Engine) RunTracked(ctx context.Context, spec TrackedSpec) error {
	h := e.Start(spec.Label, 0)
	bar := newTrackedBar(h, spec.Total)

	var chunkMu sync.Mutex
	onChunk := func(chunk string) {
		chunkMu.Lock()
		defer chunkMu.Unlock()
		if spec.ParseProgress != nil {
			if ratio, ok := spec.ParseProgress(chunk); ok {
				h.SetRatio(ratio)
			}
		}
		if spec.OnOutput != nil {
			spec.OnOutput(chunk, bar)
		}
	}

	res := e.exec.Run(ctx, runner.Spec{Command: spec.Command, Dir: spec.Dir}, onChunk, onChunk)

	return e.finish(h, spec.Label, res, spec.DoneLabel, spec.DoneLabelFunc, spec.TolerateFailure)
}

// finish is the completion sequencer. It stops the render ticker before
// anything else so no tick races the snap or the final print, then either
// snaps the bar to 100% and prints the success line, or prints the failure
// line plus the captured stderr.
func (e *Engine) finish(h *Handle, label string, res runner.Result, doneLabel string, doneLabelFunc func() string, tolerate func() bool) error {
	h.Stop()

	ok := res.ExitCode == 0
	if !ok && tolerate != nil && tolerate() {
		ok = true
	}
	if !ok {
		e.Fail(label)
		if text := strings.TrimSpace(res.StderrTail); text != "" {
			e.printErrorBlock(text)
		}
		return &CommandError{ExitCode: res.ExitCode}
	}

	from := clampRatio(h.Ratio())
	for i := 1; i <= snapFrames; i++ {
		e.render(label, from+(1-from)*float64(i)/float64(snapFrames))
		time.Sleep(snapInterval)
	}
	e.Succeed(resolveDoneLabel(label, doneLabel, doneLabelFunc))
	return nil
}

func resolveDoneLabel(label, done string, doneFunc func() string) string {
	if doneFunc != nil {
		return doneFunc()
	}
	if strings.TrimSpace(done) != "" {
		return done
	}
	return label
}

package progress

import (
	"fmt"
	"math"
	"strings"
)

const (
	glyphSuccess = "✔"
	glyphFailure = "✖"
	glyphInfo    = "ℹ"
	glyphWarning = "⚠"
)

func clampRatio(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// render paints one frame over the current terminal line. Clamping is
// display-only; the stored ratio is never touched. The spinner frame index
// advances exactly once per paint and is shared by every bar on this
// engine, so sequential runs keep the cycle going.
func (e *Engine) render(label string, ratio float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.interactive {
		return
	}

	frames := e.look.SpinnerFrames
	glyph := frames[e.frame%len(frames)]
	e.frame++

	clamped := clampRatio(ratio)
	filled := int(math.Round(float64(e.look.BarWidth) * clamped))
	empty := e.look.BarWidth - filled
	bar := e.styles.Accent.Render(strings.Repeat(e.look.FilledChar, filled)) +
		e.styles.Muted.Render(strings.Repeat(e.look.EmptyChar, empty))
	percent := e.styles.Muted.Render(fmt.Sprintf("%d%%", int(math.Round(clamped*100))))

	fmt.Fprintf(e.out, "\r\033[2K%s%s %s %s %s",
		strings.Repeat(" ", e.look.Indent), e.styles.Accent.Render(glyph), label, bar, percent)
	e.lineActive = true
}

// Succeed prints a green check line; a one-shot, it never overwrites itself.
func (e *Engine) Succeed(label string) {
	e.printState(e.styles.Success.Render(glyphSuccess), label)
}

// Fail prints a red cross line.
func (e *Engine) Fail(label string) {
	e.printState(e.styles.Failure.Render(glyphFailure), label)
}

// Info prints a dim info line.
func (e *Engine) Info(label string) {
	e.printState(e.styles.Info.Render(glyphInfo), label)
}

// Warn prints a yellow warning line.
func (e *Engine) Warn(label string) {
	e.printState(e.styles.Warning.Render(glyphWarning), label)
}

func (e *Engine) printState(glyph, label string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clearLineLocked()
	fmt.Fprintf(e.out, "%s%s %s\n", strings.Repeat(" ", e.look.Indent), glyph, label)
}

func (e *Engine) printErrorBlock(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clearLineLocked()
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(e.out, "%s%s\n", strings.Repeat(" ", e.look.Indent), e.styles.Failure.Render(line))
	}
}

func (e *Engine) clearLineLocked() {
	if !e.lineActive {
		return
	}
	e.lineActive = false
	fmt.Fprint(e.out, "\r\033[2K")
}

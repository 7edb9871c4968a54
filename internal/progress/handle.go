package progress

import (
	"sync"
	"time"
)

// Handle owns one bar's ratio and its render ticker. Exactly one ticker
// exists per handle; a handle must not be shared by two concurrent runs.
type Handle struct {
	label string

	mu    sync.Mutex
	ratio float64

	done     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

// Start paints one frame immediately, then repaints every render interval
// with whatever ratio was most recently set, until Stop is called.
func (e *Engine) Start(label string, initial float64) *Handle {
	h := &Handle{
		label:    label,
		ratio:    initial,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	e.render(label, initial)

	go func() {
		defer close(h.finished)
		ticker := time.NewTicker(e.look.RenderInterval)
		defer ticker.Stop()
		for {
			select {
			case <-h.done:
				return
			case <-ticker.C:
				e.render(h.label, h.Ratio())
			}
		}
	}()

	return h
}

// SetRatio stores v verbatim, out-of-range values included; clamping is a
// display-time concern. The next tick paints it.
func (h *Handle) SetRatio(v float64) {
	h.mu.Lock()
	h.ratio = v
	h.mu.Unlock()
}

// Ratio returns the last stored value.
func (h *Handle) Ratio() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ratio
}

// Stop cancels the render ticker and waits for the render goroutine to
// exit, so no tick can race whatever the caller paints next. Safe to call
// more than once.
func (h *Handle) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		<-h.finished
	})
}

// Yield blocks for one render interval, letting a caller that loops
// synchronously give the active bar a chance to repaint between iterations.
func (e *Engine) Yield() {
	time.Sleep(e.look.RenderInterval)
}

package progress

import "sync"

// TrackedBar is the view handed to output observers: a step counter over a
// handle. It belongs to one tracked run for that run's duration.
type TrackedBar struct {
	handle *Handle

	mu        sync.Mutex
	completed int
	total     int
}

func newTrackedBar(h *Handle, total int) *TrackedBar {
	return &TrackedBar{handle: h, total: total}
}

// Increment records one completed step. With a total set the bar moves to
// completed/total; without one the counter advances but the ratio is left
// alone.
func (b *TrackedBar) Increment() {
	b.mu.Lock()
	b.completed++
	completed, total := b.completed, b.total
	b.mu.Unlock()

	if total > 0 {
		b.handle.SetRatio(float64(completed) / float64(total))
	}
}

// SetPercent moves the bar to p percent directly, bypassing the counter.
func (b *TrackedBar) SetPercent(p float64) {
	b.handle.SetRatio(p / 100)
}

// Completed returns the number of steps recorded so far.
func (b *TrackedBar) Completed() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.completed
}

// Total returns the configured step count, zero when unknown.
func (b *TrackedBar) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

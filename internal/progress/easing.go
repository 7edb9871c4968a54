package progress

import (
	"math"
	"time"
)

// The eased curve tops out below 1.0 while the estimate window is open; the
// remaining headroom belongs to the completion snap, so an underrun estimate
// never shows a full bar on a still-running command.
const (
	easingCeiling   = 0.9
	easingSteepness = 2.5

	samplingInterval = 50 * time.Millisecond
)

// easedRatio maps wall-clock progress through the adjusted estimate onto an
// exponential ease-out approaching easingCeiling without reaching it. It is
// a pure function of elapsed time and knows nothing about real progress.
func easedRatio(elapsed, adjusted time.Duration) float64 {
	if adjusted <= 0 {
		return easingCeiling
	}
	return easingCeiling * (1 - math.Exp(-easingSteepness*float64(elapsed)/float64(adjusted)))
}
